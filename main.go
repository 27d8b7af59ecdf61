package main

import (
	"fmt"
	"os"

	"github.com/speedata/optionparser"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ByLCY/placard/config"
	"github.com/ByLCY/placard/fonts"
	"github.com/ByLCY/placard/generate"
)

var version = "dev"

func newZapLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.Config{
		Encoding:    "console",
		OutputPaths: []string{"stdout"},
		EncoderConfig: zapcore.EncoderConfig{
			EncodeLevel: zapcore.LowercaseColorLevelEncoder,
			LevelKey:    "level",
			MessageKey:  "message",
		},
	}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func dothings() error {
	var (
		verbose    bool
		configPath = "placard.toml"
		input      string
		kind       string
		outDir     string
		allSizes   bool
		withPNG    bool
		debugJSON  bool
	)
	op := optionparser.NewOptionParser()
	op.On("--verbose", "输出更多调试信息", &verbose)
	op.On("-c NAME", "--config NAME", "配置文件路径（默认 placard.toml）", &configPath)
	op.On("--in NAME", "输入文件，覆盖配置中的 input", &input)
	op.On("--kind NAME", "记录类型：entry、quote 或 authored", &kind)
	op.On("--out NAME", "输出目录，覆盖配置中的 output.dir", &outDir)
	op.On("--all-sizes", "一次生成全部标准尺寸", &allSizes)
	op.On("--png", "同时输出逐页 PNG", &withPNG)
	op.On("--debug-layout", "额外输出布局 JSON", &debugJSON)
	op.Command("run", "读取记录并生成海报页（默认命令）")
	op.Command("sizes", "列出全部标准页面尺寸")
	op.Command("fonts", "列出系统中可用的 TTF 字体")
	op.Command("version", "输出版本信息")
	if err := op.Parse(); err != nil {
		op.Help()
		return err
	}

	cmd := "run"
	if len(op.Extra) > 0 {
		cmd = op.Extra[0]
	}

	switch cmd {
	case "run":
		log, err := newZapLogger(verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if input != "" {
			cfg.Input = input
		}
		if kind != "" {
			cfg.Kind = kind
		}
		if outDir != "" {
			cfg.Output.Dir = outDir
		}
		if allSizes {
			cfg.Page.AllSizes = true
		}
		if withPNG {
			cfg.Output.PNG = true
		}
		if debugJSON {
			cfg.Output.Debug = true
		}
		if err := cfg.ApplyDefaults(); err != nil {
			return err
		}

		summary, err := generate.New(cfg, log).Run()
		if err != nil {
			return err
		}
		log.Infof("完成：%d 条记录，共 %d 页，%d 项产物",
			summary.Records, summary.Pages, len(summary.Artifacts))

	case "sizes":
		for _, s := range config.StandardSizes() {
			fmt.Printf("%-8s %g x %g in\n", s.Name, s.WidthIn, s.HeightIn)
		}

	case "fonts":
		files := fonts.Discover()
		if len(files) == 0 {
			fmt.Println("未发现任何 TTF 字体")
			return nil
		}
		for _, f := range files {
			fmt.Printf("%-32s %s\n", f.Display, f.Path)
		}

	case "version":
		fmt.Println("placard version", version)

	default:
		op.Help()
		return fmt.Errorf("未知命令：%s", cmd)
	}
	return nil
}

func main() {
	if err := dothings(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
