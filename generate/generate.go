// Package generate 是端到端的生成流水线：读取记录、构建布局、
// 渲染 PDF 与 PNG，并按命名模板把产物落盘。
package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gammazero/workerpool"
	"go.uber.org/zap"

	"github.com/ByLCY/placard/binding"
	"github.com/ByLCY/placard/config"
	"github.com/ByLCY/placard/fonts"
	"github.com/ByLCY/placard/layout"
	"github.com/ByLCY/placard/records"
)

// 并行生成多个尺寸时的工作协程数。渲染是 CPU 密集型，
// 数量超过尺寸总数没有意义。
const poolSize = 4

// Runner 执行一次完整的生成运行。记录只解析一次，各尺寸共享只读；
// 渲染器带有字体缓存，不跨协程共享，每个尺寸任务各建一个。
type Runner struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

// Artifact 是一项落盘产物。
type Artifact struct {
	Size string
	Path string
	Kind string // "pdf"、"png" 或 "zip"
}

// Summary 汇总一次运行的结果。
type Summary struct {
	Records   int
	Pages     int
	Artifacts []Artifact
	Warnings  []string
}

// New 创建生成器。log 为 nil 时使用空日志器。
func New(cfg *config.Config, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{cfg: cfg, log: log}
}

// Run 执行生成：解析记录，逐尺寸渲染，全部成功后产物才移入输出目录。
func (r *Runner) Run() (*Summary, error) {
	kind := records.Kind(r.cfg.Kind)

	recs, err := r.loadRecords(kind)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("输入 %s 中没有任何有效记录", r.cfg.Input)
	}
	r.log.Infof("已读取 %d 条记录（%s）", len(recs), kind)

	inputs, registered, err := r.styleInputs()
	if err != nil {
		return nil, err
	}
	background, err := config.ParseHexColor(r.cfg.Page.Background)
	if err != nil {
		return nil, err
	}
	lineColor, err := config.ParseHexColor(r.cfg.Line.Color)
	if err != nil {
		return nil, err
	}

	sizes, err := r.targetSizes()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	// 先写入临时目录，整体成功后再移入输出目录，避免留下残缺产物。
	staging, err := os.MkdirTemp("", "placard-*")
	if err != nil {
		return nil, fmt.Errorf("创建临时目录失败: %w", err)
	}
	defer os.RemoveAll(staging)

	summary := &Summary{Records: len(recs)}
	var mu sync.Mutex
	var firstErr error

	wp := workerpool.New(poolSize)
	for _, size := range sizes {
		size := size
		wp.Submit(func() {
			job := &sizeJob{
				runner:     r,
				kind:       kind,
				size:       size,
				records:    recs,
				inputs:     inputs,
				fonts:      registered,
				background: background,
				lineColor:  lineColor,
				staging:    staging,
			}
			arts, pages, warnings, err := job.run()
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("尺寸 %s 生成失败: %w", size.Name, err)
				}
				return
			}
			summary.Pages += pages
			summary.Artifacts = append(summary.Artifacts, arts...)
			summary.Warnings = append(summary.Warnings, warnings...)
		})
	}
	wp.StopWait()
	if firstErr != nil {
		return nil, firstErr
	}

	if r.cfg.Page.AllSizes && r.cfg.Output.PNG {
		zipName := binding.SanitizeName(fmt.Sprintf("%s_pages_all_sizes", kind)) + ".zip"
		zipPath := filepath.Join(staging, zipName)
		if err := archiveArtifacts(zipPath, staging, summary.Artifacts); err != nil {
			return nil, err
		}
		summary.Artifacts = append(summary.Artifacts, Artifact{Size: "all", Path: zipPath, Kind: "zip"})
	}

	if err := r.publish(staging, summary); err != nil {
		return nil, err
	}
	for _, w := range summary.Warnings {
		r.log.Warnf("%s", w)
	}
	return summary, nil
}

func (r *Runner) loadRecords(kind records.Kind) ([]records.Record, error) {
	if r.cfg.Input == "" {
		return nil, fmt.Errorf("未指定输入文件")
	}
	f, err := os.Open(r.cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("打开输入文件失败: %w", err)
	}
	defer f.Close()
	return records.Load(f, kind, r.log)
}

// styleInputs 注册各角色的字体并合成排版输入，附带注册表中的
// 字体资源清单供渲染器预加载。同一字体文件在注册表中只占一个句柄。
func (r *Runner) styleInputs() (layout.StyleInputs, []layout.FontResource, error) {
	inputs, err := r.cfg.StyleInputs()
	if err != nil {
		return layout.StyleInputs{}, nil, err
	}
	reg := fonts.NewRegistry()
	roles := []struct {
		src  string
		dst  *layout.RoleInput
		name string
	}{
		{r.cfg.Term.Font, &inputs.Term, "term"},
		{r.cfg.Pronunciation.Font, &inputs.Pronunciation, "pronunciation"},
		{r.cfg.Definition.Font, &inputs.Definition, "definition"},
		{r.cfg.Quote.Font, &inputs.Quote, "quote"},
		{r.cfg.Author.Font, &inputs.Author, "author"},
	}
	for _, role := range roles {
		res, err := reg.Register(role.src)
		if err != nil {
			return layout.StyleInputs{}, nil, fmt.Errorf("角色 %s 的字体无效: %w", role.name, err)
		}
		role.dst.Font = res
	}
	return inputs, reg.Registered(), nil
}

// targetSizes 确定本次运行要生成的页面尺寸列表。
func (r *Runner) targetSizes() ([]config.StandardSize, error) {
	if r.cfg.Page.AllSizes {
		return config.StandardSizes(), nil
	}
	w, h, err := r.cfg.PageSize()
	if err != nil {
		return nil, err
	}
	name := r.cfg.Page.Size
	if name == "" {
		name = fmt.Sprintf("%gx%g", w, h)
	}
	return []config.StandardSize{{Name: name, WidthIn: w, HeightIn: h}}, nil
}

// publish 把临时目录中的产物移入输出目录，并改写 Summary 中的路径。
func (r *Runner) publish(staging string, summary *Summary) error {
	for i, art := range summary.Artifacts {
		rel, err := filepath.Rel(staging, art.Path)
		if err != nil {
			return err
		}
		dst := filepath.Join(r.cfg.Output.Dir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.Rename(art.Path, dst); err != nil {
			// 跨文件系统时 rename 会失败，退回复制。
			if err := copyFile(art.Path, dst); err != nil {
				return fmt.Errorf("移动产物 %s 失败: %w", rel, err)
			}
		}
		summary.Artifacts[i].Path = dst
		r.log.Infof("已生成 %s", dst)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
