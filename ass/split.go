package ass

import "strings"

// 覆写标签的类别位
// 位值与过滤掩码 keep 一一对应
type Components uint32

const (
	SplitText          Components = 1 << iota // 花括号外的普通文本
	SplitText2                                // 与 SplitText 等价，用于区分预设集合里的文本位
	SplitColor                                // \c \1c..\4c
	SplitAlpha                                // \alpha \1a..\4a
	SplitFontName                             // \fn
	SplitFontSize                             // \fs
	SplitFontScale                            // \fscx \fscy
	SplitFontSpacing                          // \fsp
	SplitFontCharset                          // \fe
	SplitFontBold                             // \b
	SplitFontItalic                           // \i
	SplitFontUnderline                        // \u
	SplitFontStrikeout                        // \s
	SplitBorder                               // \bord
	SplitShadow                               // \shad
	SplitRotate                               // \fr \frx \fry \frz
	SplitBlur                                 // \blur \be
	SplitWrap                                 // \q
	SplitAlignment                            // \a \an
	SplitCancelling                           // \r[样式名]
	SplitMove                                 // \move
	SplitPos                                  // \pos
	SplitOrigin                               // \org
	SplitDraw                                 // \p
	SplitAnimate                              // \t
	SplitFade                                 // \fad \fade
	SplitClip                                 // \clip \iclip
	SplitUnknown                              // 无法识别的标签
)

const (
	// 静态样式类标签
	SplitBasic = SplitText2 | SplitColor | SplitAlpha | SplitFontName | SplitFontSize |
		SplitFontScale | SplitFontSpacing | SplitFontCharset | SplitFontBold |
		SplitFontItalic | SplitFontUnderline | SplitFontStrikeout | SplitBorder |
		SplitShadow | SplitWrap | SplitAlignment | SplitPos | SplitCancelling

	// 全部已识别的标签（不含 SplitUnknown）
	SplitAllKnown = SplitBasic | SplitRotate | SplitBlur | SplitMove | SplitOrigin |
		SplitDraw | SplitAnimate | SplitFade | SplitClip
)

// 覆写标签扫描器的回调集合
// 所有方法都是可选的：嵌入 NopHandler 后只实现自己关心的回调即可，
// 扫描器不会假定任何回调存在
type Handler interface {
	// 花括号外的一段普通文本
	// 绘图模式下依然会被调用，是否忽略由消费方根据 DrawingMode 状态决定
	Text(text string)
	// \h 硬空格
	HardSpace()
	// \N（forced=true）或 \n（forced=false）换行
	NewLine(forced bool)
	// \b \i \u \s 样式开关，code 为标签字母，数字参数为 0 时 close=true
	Style(code byte, close bool)
	// \c \1c..\4c 颜色，value 为 0xBBGGRR，id 1=主色..4=阴影色（裸 \c 与 \1c 等价）
	Color(value uint32, id int)
	// \alpha \1a..\4a 透明度，裸 \alpha 的 id 为 0 表示作用于全部通道
	Alpha(value int, id int)
	// \fn 字体名，参数到下一个 '\' 或 '}' 为止
	FontName(name string)
	// \fs 字号
	FontSize(size int)
	// \a \an 对齐，两种写法统一为 水平{1,2,3} | 垂直{0=底,4=中,8=顶}
	Alignment(align int)
	// \r[样式名] 取消之前的覆写，style 为空表示回到行样式
	// 回调只做通知，重新推导默认值是消费方的职责
	CancelOverrides(style string)
	// \pos 固定位置（与 Move 区分，便于判断真实运动）
	Pos(x, y int)
	// \move 运动，未给出时间时 t1=t2=-1
	Move(x1, y1, x2, y2, t1, t2 int)
	// \org 旋转原点
	Origin(x, y int)
	// \p 绘图模式，scale 为 0 时关闭
	// 该状态跨越花括号持续生效，直到下一个 \p
	DrawingMode(scale int)
	// \t 动画，t1/t2 缺省为 0，accel 缺省为 1，inner 是未解析的嵌套标签串
	Animate(t1, t2 int, accel float64, inner string)
	// 其余标签的通用回调：
	//   SplitFontScale/SplitFontSpacing/SplitFontCharset/SplitBorder/SplitShadow/
	//   SplitRotate/SplitBlur/SplitWrap: tag 为含名称的原始标签文本，p1 为数值参数取整
	//   SplitFade: tag 为括号内的原始参数
	//   SplitClip: tag 为括号内的原始参数，p1=1 表示 \iclip
	//   SplitUnknown: tag 为原始标签文本
	Ext(id Components, tag string, p1, p2 int)
	// 载荷扫描结束，恰好调用一次（空载荷也会调用）
	End()
}

// NopHandler 实现 Handler 的全部方法且什么也不做
// 消费方嵌入后按需覆盖
type NopHandler struct{}

func (NopHandler) Text(string)                        {}
func (NopHandler) HardSpace()                         {}
func (NopHandler) NewLine(bool)                       {}
func (NopHandler) Style(byte, bool)                   {}
func (NopHandler) Color(uint32, int)                  {}
func (NopHandler) Alpha(int, int)                     {}
func (NopHandler) FontName(string)                    {}
func (NopHandler) FontSize(int)                       {}
func (NopHandler) Alignment(int)                      {}
func (NopHandler) CancelOverrides(string)             {}
func (NopHandler) Pos(int, int)                       {}
func (NopHandler) Move(int, int, int, int, int, int)  {}
func (NopHandler) Origin(int, int)                    {}
func (NopHandler) DrawingMode(int)                    {}
func (NopHandler) Animate(int, int, float64, string)  {}
func (NopHandler) Ext(Components, string, int, int)   {}
func (NopHandler) End()                               {}

var _ Handler = NopHandler{}

var nopHandler = NopHandler{}

// 扫描一条对话文本载荷中的覆写标签并驱动回调
// 纯观察模式，不产生输出；任何输入都不会失败，游标每轮严格前进
func SplitOverrideCodes(h Handler, text string) {
	if h == nil {
		h = nopHandler
	}
	s := &splitter{h: h, src: text}
	s.run()
}

// 与 SplitOverrideCodes 相同的扫描，同时重建一份只保留 keep 中类别的文本
// 被滤掉的标签仍会触发回调（供消费方统计旁路状态），只是不写入输出；
// 文本类别被滤掉时普通文本一并丢弃；空标签组 {} 不会出现在输出中
func FilterOverrideCodes(h Handler, text string, keep Components) string {
	if h == nil {
		h = nopHandler
	}
	s := &splitter{h: h, src: text, keep: keep, filter: true}
	s.run()
	return s.out.String()
}

// 第一段普通文本的字节偏移
// 用于在标签组之后插入内容（例如说话人前缀），避免各消费方重复实现花括号扫描
// 整条载荷没有普通文本时返回 len(text)
func FirstLiteralOffset(text string) int {
	pos := 0
	for pos < len(text) {
		switch text[pos] {
		case '{':
			end := strings.IndexByte(text[pos:], '}')
			if end < 0 {
				return len(text) // 未闭合的花括号吞掉剩余全部内容
			}
			pos += end + 1
		case '}':
			pos++ // 多余的 '}' 静默跳过
		default:
			return pos
		}
	}
	return len(text)
}

// 逐段重写普通文本，标签组原样保留
// fn 只会收到花括号外的文字（\h \n \N 等转义不经过 fn），
// 绘图模式下的矢量坐标不做改写
func MapText(text string, fn func(string) string) string {
	s := &splitter{
		h:      nopHandler,
		src:    text,
		keep:   SplitText | SplitText2 | SplitAllKnown | SplitUnknown,
		filter: true,
		mapFn:  fn,
	}
	s.run()
	return s.out.String()
}
