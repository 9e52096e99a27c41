package srt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Akimio521/asscodec-go/ass"
)

// 提取纯文本的访问器，绘图段丢弃
type plainText struct {
	ass.NopHandler
	b       strings.Builder
	drawing bool
}

func (p *plainText) Text(text string) {
	if !p.drawing {
		p.b.WriteString(text)
	}
}

func (p *plainText) HardSpace() {
	p.b.WriteByte(' ')
}

func (p *plainText) NewLine(bool) {
	p.b.WriteByte('\n')
}

func (p *plainText) DrawingMode(scale int) {
	p.drawing = scale != 0
}

// PlainText 去掉载荷里的全部覆写标记，返回可读文本
func PlainText(text string) string {
	h := &plainText{}
	ass.SplitOverrideCodes(h, text)
	return h.b.String()
}

// FromScript 把解析好的 ASS 脚本写成 SRT 文档
// 事件按开始时间排序重新编号，纯文本为空的事件（例如纯绘图）跳过
func FromScript(writer io.Writer, sp *ass.ScriptParser) error {
	events := make([]ass.Dialog, len(sp.Events))
	copy(events, sp.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Start < events[j].Start })

	index := 0
	for i := range events {
		text := strings.TrimSpace(PlainText(events[i].Text))
		if text == "" {
			continue
		}
		index++
		_, err := fmt.Fprintf(writer, "%d\n%s --> %s\n%s\n\n",
			index, FormatSRTTime(events[i].Start), FormatSRTTime(events[i].End), text)
		if err != nil {
			return fmt.Errorf("write srt entry error: %w", err)
		}
	}
	if index == 0 {
		return ErrEmptyDocument
	}
	return nil
}
