package converter

// TextConverter 定义文本转换器接口
type TextConverter interface {
	TradToSim(text string) string // 将繁体中文转换为简体
}

// Identity 原样返回文本，用于未启用繁简转换的场景
type Identity struct{}

// TradToSim 不做任何转换
func (Identity) TradToSim(text string) string {
	return text
}
