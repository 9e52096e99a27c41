package textmod

import (
	"fmt"
	"strings"

	"github.com/Akimio521/asscodec-go/ass"
)

// 说话人前缀的呈现方式
type SpeakerMode int

const (
	SpeakerSquare SpeakerMode = iota // [名字]
	SpeakerRound                     // (名字)
	SpeakerColon                     // 名字:
	SpeakerPlain                     // 名字
)

// ShowSpeaker 把事件的说话人名字插进文本载荷
// 插入点是第一段普通文本的偏移，行首的标签组保持在前
type ShowSpeaker struct {
	Mode      SpeakerMode
	Style     string // 前缀的样式：完整标签组（{...}）或样式名，空则继承行内样式
	LineBreak bool   // 名字后换行而不是空格
}

// Apply 返回插入说话人前缀后的文本
// 名字为空或载荷没有普通文本时原样返回
func (ss *ShowSpeaker) Apply(d *ass.Dialog) string {
	if d.Name == "" || d.Text == "" {
		return d.Text
	}

	pos := ass.FirstLiteralOffset(d.Text)
	if ss.Style != "" {
		// 指定了前缀样式时直接插在行首
		pos = 0
	}
	if pos >= len(d.Text) {
		return d.Text
	}

	var b strings.Builder
	b.WriteString(d.Text[:pos])

	if ss.Style != "" {
		if ss.Style[0] == '{' {
			b.WriteString(ss.Style) // 完整的标签组原样使用
		} else {
			fmt.Fprintf(&b, `{\r%s}`, ss.Style)
		}
	}

	switch ss.Mode {
	case SpeakerRound:
		fmt.Fprintf(&b, "(%s)", d.Name)
	case SpeakerColon:
		fmt.Fprintf(&b, "%s:", d.Name)
	case SpeakerPlain:
		b.WriteString(d.Name)
	default:
		fmt.Fprintf(&b, "[%s]", d.Name)
	}

	if ss.Style != "" {
		b.WriteString(`{\r}`) // 回到行样式
	}

	if ss.LineBreak {
		b.WriteString(`\N`)
	} else {
		b.WriteByte(' ')
	}

	b.WriteString(d.Text[pos:])
	return b.String()
}
