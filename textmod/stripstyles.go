package textmod

import (
	"github.com/Akimio521/asscodec-go/ass"
)

// StripStyles 按类别掩码清理事件里的覆写标签
// 纯文本为零的事件（纯绘图、或开启 RemoveAnimated 后全部文本都在动画里）整条丢弃
type StripStyles struct {
	KeepFlags      ass.Components // 保留的标签类别
	RemoveAnimated bool           // 丢弃可见文本全在动画中的事件
	SelectLayer    int            // 只保留指定图层，-1 表示全部
}

func NewStripStyles() *StripStyles {
	return &StripStyles{
		KeepFlags:   ass.SplitText,
		SelectLayer: -1,
	}
}

// 单条事件的旁路状态，随扫描累积
type dialogContext struct {
	ass.NopHandler

	removeAnimated bool
	drawingScale   int
	isAnimated     bool
	plainTextLen   int
}

func (dc *dialogContext) Text(text string) {
	if dc.drawingScale == 0 && (!dc.isAnimated || !dc.removeAnimated) {
		dc.plainTextLen += len(text)
	}
}

func (dc *dialogContext) NewLine(bool) {
	if dc.drawingScale == 0 && !dc.isAnimated {
		dc.plainTextLen += 2
	}
}

func (dc *dialogContext) DrawingMode(scale int) {
	dc.drawingScale = scale
}

func (dc *dialogContext) Animate(int, int, float64, string) {
	dc.isAnimated = true
}

// 带时间参数的 \move 视为动画
func (dc *dialogContext) Move(x1, y1, x2, y2, t1, t2 int) {
	if t1 >= 0 || t2 >= 0 {
		dc.isAnimated = true
	}
}

// ProcessDialog 重写单条事件的文本载荷
// 返回 false 表示整条事件应被丢弃（图层不匹配或没有可见文本）
func (ss *StripStyles) ProcessDialog(d *ass.Dialog) (string, bool) {
	if ss.SelectLayer >= 0 && d.Layer != ss.SelectLayer {
		return "", false
	}

	dc := &dialogContext{removeAnimated: ss.RemoveAnimated}
	out := ass.FilterOverrideCodes(dc, d.Text, ss.KeepFlags)

	if len(out) == 0 || dc.plainTextLen == 0 {
		return "", false
	}
	return out, true
}

// ProcessLine 处理一条 9 字段对话行，返回重写后的行
// 行本身非法或事件被丢弃时返回 false
func (ss *StripStyles) ProcessLine(line string) (string, bool) {
	d, err := ass.ParseDialogLine(line)
	if err != nil {
		return "", false
	}
	text, keep := ss.ProcessDialog(d)
	if !keep {
		return "", false
	}
	d.Text = text
	return d.Marshal(), true
}
