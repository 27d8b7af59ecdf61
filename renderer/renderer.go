package renderer

import (
	"image"

	"github.com/ByLCY/placard/layout"
)

// Renderer 将布局结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据（PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Rasterizer 把布局结果的每一页栅格化为一张图像。
// dpi 为目标分辨率，返回的切片与页面顺序一致。
type Rasterizer interface {
	RenderImages(result *layout.Result, dpi float64) ([]image.Image, error)
}

// FontPreloader 在渲染开始前预先装载一批字体资源，
// 使字体文件问题在首页渲染之前暴露。
type FontPreloader interface {
	Preload(resources []layout.FontResource) error
}
