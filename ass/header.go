package ass

import (
	"fmt"
	"strings"
)

const stylesFormatLine = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"

// 数据包形式的事件表头，事件行不带时间戳（时间由载体携带）
const eventsFormatLine = "Format: ReadOrder, Layer, Style, Name, MarginL, MarginR, MarginV, Effect, Text"

// 落盘脚本的事件表头，Dialogue 行自带起止时间
const fileEventsFormatLine = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"

// 生成数据包形式的脚本头（[Script Info] + [V4+ Styles] + [Events] 表头）
// 产物可直接作为 ParseScript 的输入
func SubtitleHeader(info ScriptInfo, styles ...Style) string {
	return subtitleHeader(info, eventsFormatLine, styles)
}

// 生成落盘脚本的脚本头，事件行需要写成带时间戳的文件形式
func FileSubtitleHeader(info ScriptInfo, styles ...Style) string {
	return subtitleHeader(info, fileEventsFormatLine, styles)
}

func subtitleHeader(info ScriptInfo, eventsFormat string, styles []Style) string {
	var b strings.Builder

	b.WriteString("[Script Info]\n")
	b.WriteString("; Script generated by asscodec-go\n")
	scriptType := info.ScriptType
	if scriptType == "" {
		scriptType = "v4.00+"
	}
	fmt.Fprintf(&b, "ScriptType: %s\n", scriptType)
	playResX, playResY := info.PlayResX, info.PlayResY
	if playResX <= 0 {
		playResX = DefaultPlayResX
	}
	if playResY <= 0 {
		playResY = DefaultPlayResY
	}
	fmt.Fprintf(&b, "PlayResX: %d\n", playResX)
	fmt.Fprintf(&b, "PlayResY: %d\n", playResY)
	b.WriteString("ScaledBorderAndShadow: yes\n")
	b.WriteString("\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString(stylesFormatLine + "\n")
	if len(styles) == 0 {
		styles = []Style{DefaultStyle()}
	}
	for i := range styles {
		b.WriteString(marshalStyle(&styles[i]) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("[Events]\n")
	b.WriteString(eventsFormat + "\n")
	return b.String()
}

// 默认脚本头：384x288、默认样式
func DefaultSubtitleHeader() string {
	return SubtitleHeader(ScriptInfo{})
}

// 默认落盘脚本头
func DefaultFileSubtitleHeader() string {
	return FileSubtitleHeader(ScriptInfo{})
}

// 按 V4+ 格式序列化一条样式行，字段顺序与 stylesFormatLine 一致
func marshalStyle(s *Style) string {
	name := s.Name
	if name == "" {
		name = DefaultStyleName
	}
	return fmt.Sprintf("Style: %s,%s,%d,&H%08X,&H%08X,&H%08X,&H%08X,%d,%s,%s,%s,%s,%s,%s,%s,%d,%s,%s,%d,%d,%d,%d,%d",
		name, s.FontName, s.FontSize,
		s.PrimaryColor, s.SecondaryColor, s.OutlineColor, s.BackColor,
		s.Bold, marshalBool(s.Italic), marshalBool(s.Underline), marshalBool(s.StrikeOut),
		formatFloat(s.ScaleX*100), formatFloat(s.ScaleY*100),
		formatFloat(s.Spacing), formatFloat(s.Angle),
		s.BorderStyle, formatFloat(s.Outline), formatFloat(s.Shadow),
		s.Alignment, s.MarginL, s.MarginR, s.MarginV, s.Encoding)
}

// SSA 布尔值写作 -1/0
func marshalBool(v bool) string {
	if v {
		return "-1"
	}
	return "0"
}

// 去掉多余小数位的浮点格式化（100.0 -> "100"，0.5 -> "0.5"）
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", f), "0"), ".")
}
