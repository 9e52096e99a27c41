package ass

import (
	"fmt"
	"strings"
)

// 数据包格式的对话行共 9 个字段：
// ReadOrder,Layer,Style,Name,MarginL,MarginR,MarginV,Effect,Text
const dialogFieldCount = 9

// 解析一条 9 字段对话行
// 只在前 8 个逗号处切分，第 9 个字段是剩余的全部内容（可以包含逗号、花括号、反斜杠）
// 顶层逗号不足返回 ErrFieldCount，数字字段内容非法返回 ErrBadNumber，
// 两种情况下整条事件都应被调用方丢弃
func ParseDialogLine(line string) (*Dialog, error) {
	raw := line
	if startWith(raw, "Dialogue:") {
		raw = strings.TrimLeft(raw[len("Dialogue:"):], " \t")
	}

	parts := strings.SplitN(raw, ",", dialogFieldCount)
	if len(parts) < dialogFieldCount {
		return nil, NewErrFieldCount(line, len(parts))
	}

	d := &Dialog{
		Style:  parts[2],
		Name:   parts[3],
		Effect: parts[7],
		Text:   parts[8],
	}

	var err error
	if d.ReadOrder, err = parseIntField("ReadOrder", parts[0]); err != nil {
		return nil, err
	}
	if d.Layer, err = parseIntField("Layer", parts[1]); err != nil {
		return nil, err
	}
	if d.MarginL, err = parseIntField("MarginL", parts[4]); err != nil {
		return nil, err
	}
	if d.MarginR, err = parseIntField("MarginR", parts[5]); err != nil {
		return nil, err
	}
	if d.MarginV, err = parseIntField("MarginV", parts[6]); err != nil {
		return nil, err
	}
	return d, nil
}

// 序列化为 9 字段对话行，与 ParseDialogLine 互逆
// Text 字段永远不做转义，样式名为空时写入 Default
func (d *Dialog) Marshal() string {
	style := d.Style
	if style == "" {
		style = DefaultStyleName
	}
	return fmt.Sprintf("%d,%d,%s,%s,%d,%d,%d,%s,%s",
		d.ReadOrder, d.Layer, style, d.Name,
		d.MarginL, d.MarginR, d.MarginV, d.Effect, d.Text)
}

// 将普通文本转义为 ASS 事件文本
// 换行与 linebreaks 中的字符转成 \N，'\r' 丢弃
// keepMarkup 为 true 时不转义 '{' '}' '\'，原始标签原样保留
func EscapeTextEvent(text string, linebreaks string, keepMarkup bool) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case linebreaks != "" && strings.IndexByte(linebreaks, c) >= 0:
			b.WriteString(`\N`)
		case !keepMarkup && (c == '{' || c == '}' || c == '\\'):
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\r':
			// 丢弃，统一不同来源的行尾
		case c == '\n':
			b.WriteString(`\N`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
