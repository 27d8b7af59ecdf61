package generate

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/ByLCY/placard/binding"
	"github.com/ByLCY/placard/config"
	"github.com/ByLCY/placard/layout"
	"github.com/ByLCY/placard/records"
	"github.com/ByLCY/placard/renderer"
	canvasrenderer "github.com/ByLCY/placard/renderer/canvas"
)

// sizeJob 在单一页面尺寸上完成布局与渲染。每个任务持有自己的
// 渲染器实例，字体缓存不跨任务共享。
type sizeJob struct {
	runner     *Runner
	kind       records.Kind
	size       config.StandardSize
	records    []records.Record
	inputs     layout.StyleInputs
	fonts      []layout.FontResource
	background layout.Color
	lineColor  layout.Color
	staging    string
}

func (j *sizeJob) run() ([]Artifact, int, []string, error) {
	cfg := j.runner.cfg
	log := j.runner.log

	var rend renderer.Renderer = canvasrenderer.NewRenderer()
	ts, ok := rend.(layout.Typesetter)
	if !ok {
		return nil, 0, nil, fmt.Errorf("渲染器未实现排版接口")
	}
	if pl, ok := rend.(renderer.FontPreloader); ok {
		if err := pl.Preload(j.fonts); err != nil {
			return nil, 0, nil, err
		}
	}

	g := layout.NewGeometry(j.size.WidthIn, j.size.HeightIn)
	spec := layout.Spec{
		Kind:       j.kind,
		Geometry:   g,
		Styles:     layout.NewStyles(j.kind, g, j.inputs),
		Position:   layout.NormalizePosition(cfg.Page.Position),
		Background: j.background,
		LineColor:  j.lineColor,
		Meta: layout.DocumentMeta{
			Title:   fmt.Sprintf("%s %s", j.kind, j.size.Name),
			Creator: "placard",
		},
	}

	result, err := layout.Build(j.records, spec, layout.BuildOptions{
		Typesetter: ts,
		Logger:     log,
	})
	if err != nil {
		return nil, 0, nil, err
	}

	baseName, err := binding.ExpandStrict(cfg.Output.Pattern, binding.Vars{
		"kind": string(j.kind),
		"size": j.size.Name,
	})
	if err != nil {
		return nil, 0, nil, err
	}
	baseName = binding.SanitizeName(baseName)

	var artifacts []Artifact

	if cfg.Output.Debug {
		debugPath := filepath.Join(j.staging, baseName+".layout.json")
		if err := layout.WriteDebugJSON(result, debugPath); err != nil {
			return nil, 0, nil, fmt.Errorf("输出布局 JSON 失败: %w", err)
		}
		artifacts = append(artifacts, Artifact{Size: j.size.Name, Path: debugPath, Kind: "json"})
	}

	if cfg.Output.PDF != nil && *cfg.Output.PDF {
		data, err := rend.Render(result)
		if err != nil {
			return nil, 0, nil, err
		}
		pdfPath := filepath.Join(j.staging, baseName+".pdf")
		if err := os.WriteFile(pdfPath, data, 0o644); err != nil {
			return nil, 0, nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
		log.Debugf("尺寸 %s: PDF 共 %d 页", j.size.Name, len(result.Pages))
		artifacts = append(artifacts, Artifact{Size: j.size.Name, Path: pdfPath, Kind: "pdf"})
	}

	if cfg.Output.PNG {
		ras, ok := rend.(renderer.Rasterizer)
		if !ok {
			return nil, 0, nil, fmt.Errorf("渲染器不支持栅格化输出")
		}
		pngArts, err := j.writePages(ras, result, baseName)
		if err != nil {
			return nil, 0, nil, err
		}
		artifacts = append(artifacts, pngArts...)
	}

	return artifacts, len(result.Pages), result.Warnings, nil
}

// writePages 把每一页栅格化为 page_NNN.png，放入以命名模板
// 展开结果为名的子目录。
func (j *sizeJob) writePages(rend renderer.Rasterizer, result *layout.Result, baseName string) ([]Artifact, error) {
	images, err := rend.RenderImages(result, float64(j.runner.cfg.Output.DPI))
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(j.staging, baseName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var artifacts []Artifact
	for i, img := range images {
		path := filepath.Join(dir, fmt.Sprintf("page_%03d.png", i+1))
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("创建 %s 失败: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return nil, fmt.Errorf("编码 %s 失败: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Size: j.size.Name, Path: path, Kind: "png"})
	}
	return artifacts, nil
}
