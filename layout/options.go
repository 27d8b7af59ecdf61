package layout

import "go.uber.org/zap"

// BuildOptions 配置布局阶段所需的依赖，例如排版后端与日志。
type BuildOptions struct {
	Typesetter Typesetter
	Logger     *zap.SugaredLogger
}

func (o BuildOptions) logger() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop().Sugar()
}

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
// 这是布局核心唯一依赖的外部文本成形原语：估算与排版都经过它，
// 保证估出的高度与最终画出的高度来自同一套折行逻辑。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontResource, fontSize float64, lineHeight float64) ([]TextLine, error)
}
