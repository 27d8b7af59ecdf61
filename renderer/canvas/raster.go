package canvasrenderer

import (
	"fmt"
	"image"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/placard/layout"
)

// RenderImages 将布局结果的每一页栅格化为一张图像。
// dpi 为目标分辨率，返回的图像顺序与页面顺序一致。
func (r *Renderer) RenderImages(result *layout.Result, dpi float64) ([]image.Image, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可栅格化的页面")
	}
	if dpi <= 0 {
		dpi = 150
	}

	out := make([]image.Image, 0, len(result.Pages))
	for i, page := range result.Pages {
		c, err := r.renderPage(page)
		if err != nil {
			return nil, fmt.Errorf("栅格化第 %d 页失败: %w", i+1, err)
		}
		out = append(out, rasterizer.Draw(c, canvas.DPI(dpi), canvas.DefaultColorSpace))
	}
	return out, nil
}
