package webvtt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Akimio521/asscodec-go/ass"
)

// 开放标签栈的容量，溢出时丢弃新标签并告警，绝不中止转换
const stackSize = 64

// 无样式基线，样式字段偏离基线时才输出对应标签
const (
	baselineBold      = 0
	baselineItalic    = false
	baselineUnderline = false
)

type Option func(*Encoder)

// WithWarnFn 设置非致命问题（标签栈溢出）的通知回调
func WithWarnFn(fn func(msg string)) Option {
	return func(e *Encoder) {
		e.warn = fn
	}
}

// Encoder 把 ASS 对话事件转换为 WebVTT 片段文本
// 作为覆写标签扫描器的访问器实现，闭合标签严格按栈序
type Encoder struct {
	ass.NopHandler

	script *ass.ScriptParser // 样式查询来源，可为 nil
	warn   func(msg string)

	buf     strings.Builder
	stack   [stackSize]byte
	sp      int
	drawing bool
}

func NewEncoder(script *ass.ScriptParser, opts ...Option) *Encoder {
	e := &Encoder{
		script: script,
		warn:   func(string) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EncodeDialog 转换单条事件的文本载荷
// 先按事件引用的样式打开 b/i/u 标签，再扫描覆写标签
func (e *Encoder) EncodeDialog(d *ass.Dialog) string {
	e.buf.Reset()
	e.sp = 0
	e.drawing = false
	e.styleApply(d.Style)
	ass.SplitOverrideCodes(e, d.Text)
	return e.buf.String()
}

// 访问器实现

func (e *Encoder) Text(text string) {
	if e.drawing { // 矢量绘图坐标不进字幕文本
		return
	}
	e.buf.WriteString(text)
}

func (e *Encoder) DrawingMode(scale int) {
	e.drawing = scale != 0
}

func (e *Encoder) NewLine(bool) {
	e.buf.WriteByte('\n')
}

func (e *Encoder) HardSpace() {
	e.buf.WriteString("&nbsp;")
}

func (e *Encoder) Style(code byte, close bool) {
	if code == 's' { // WebVTT 不支持删除线
		return
	}
	e.pushPop(code, close)
	if !close {
		fmt.Fprintf(&e.buf, "<%c>", code)
	}
}

func (e *Encoder) CancelOverrides(style string) {
	e.pushPop(0, true)
	e.styleApply(style)
}

func (e *Encoder) End() {
	e.pushPop(0, true)
}

// 按样式相对基线的差异打开 b/i/u 标签
// 样式查不到时什么也不做
func (e *Encoder) styleApply(name string) {
	if e.script == nil || e.script.StyleTable == nil {
		return
	}
	st := e.script.StyleTable.Get(name)
	if st == nil {
		return
	}
	if st.Bold != baselineBold {
		e.buf.WriteString("<b>")
		e.push('b')
	}
	if st.Italic != baselineItalic {
		e.buf.WriteString("<i>")
		e.push('i')
	}
	if st.Underline != baselineUnderline {
		e.buf.WriteString("<u>")
		e.push('u')
	}
}

// close 为真时弹栈到目标标签（c 为 0 表示弹空），逐个写出闭合标签；
// 栈里找不到目标标签则忽略本次关闭
func (e *Encoder) pushPop(c byte, close bool) {
	if close {
		i := 0
		if c != 0 {
			i = e.find(c)
		}
		if i < 0 {
			return
		}
		for e.sp != i {
			e.sp--
			fmt.Fprintf(&e.buf, "</%c>", e.stack[e.sp])
		}
		return
	}
	e.push(c)
}

func (e *Encoder) push(c byte) {
	if e.sp >= stackSize {
		e.warn("tag stack overflow")
		return
	}
	e.stack[e.sp] = c
	e.sp++
}

func (e *Encoder) find(c byte) int {
	for i := e.sp - 1; i >= 0; i-- {
		if e.stack[i] == c {
			return i
		}
	}
	return -1
}

// 厘秒转 WebVTT 的 HH:MM:SS.mmm
func FormatTime(cs int) string {
	if cs < 0 {
		cs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d",
		cs/360000, cs/6000%60, cs/100%60, cs%100*10)
}

// WriteDocument 把解析好的 ASS 脚本写成完整的 WebVTT 文档
// cue 按开始时间排序，转换后为空的事件跳过
func WriteDocument(writer io.Writer, sp *ass.ScriptParser, opts ...Option) error {
	if _, err := io.WriteString(writer, "WEBVTT\n\n"); err != nil {
		return fmt.Errorf("write webvtt header error: %w", err)
	}

	events := make([]ass.Dialog, len(sp.Events))
	copy(events, sp.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Start < events[j].Start })

	enc := NewEncoder(sp, opts...)
	for i := range events {
		payload := enc.EncodeDialog(&events[i])
		if strings.TrimSpace(payload) == "" {
			continue
		}
		_, err := fmt.Fprintf(writer, "%s --> %s\n%s\n\n",
			FormatTime(events[i].Start), FormatTime(events[i].End), payload)
		if err != nil {
			return fmt.Errorf("write webvtt cue error: %w", err)
		}
	}
	return nil
}
