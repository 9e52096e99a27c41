package ass

import (
	"strconv"
	"strings"
)

// 覆写标签扫描状态机
// 两条正交状态：扫描模式（普通文本/标签）由花括号切换，
// 绘图标志由 \p 设置并跨越花括号持续生效，直到下一个 \p
type splitter struct {
	h   Handler
	src string
	pos int

	filter bool
	keep   Components
	mapFn  func(string) string // 仅 MapText 使用
	out    strings.Builder
	group  strings.Builder // 当前标签组中被保留的标签

	drawing int // \p 刻度，0 表示关闭
}

func (s *splitter) keepText() bool {
	return s.keep&(SplitText|SplitText2) != 0
}

func (s *splitter) run() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '{':
			s.pos++
			s.scanTags()
		case '}':
			s.pos++ // 吞掉未匹配的 '}'，不回调也不报错
		default:
			s.scanLiteral()
		}
	}
	s.h.End()
}

// 扫描一段花括号外的内容，处理 \h \n \N 转义
// 其余反斜杠按普通文本对待
func (s *splitter) scanLiteral() {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '{' || c == '}' {
			break
		}
		if c == '\\' && s.pos+1 < len(s.src) {
			switch s.src[s.pos+1] {
			case 'h':
				s.flushText(start)
				s.h.HardSpace()
				s.emitEscape(`\h`)
				s.pos += 2
				start = s.pos
				continue
			case 'n', 'N':
				s.flushText(start)
				s.h.NewLine(s.src[s.pos+1] == 'N')
				s.emitEscape(s.src[s.pos : s.pos+2])
				s.pos += 2
				start = s.pos
				continue
			}
		}
		s.pos++
	}
	s.flushText(start)
}

// 回调并按需写出 [start, s.pos) 的普通文本
// 绘图模式下照常回调，是否忽略由消费方决定
func (s *splitter) flushText(start int) {
	if s.pos <= start {
		return
	}
	run := s.src[start:s.pos]
	s.h.Text(run)
	if s.filter && s.keepText() {
		if s.mapFn != nil && s.drawing == 0 {
			run = s.mapFn(run)
		}
		s.out.WriteString(run)
	}
}

// 原样写出文本类转义（\h \n \N），属于文本类别
func (s *splitter) emitEscape(chunk string) {
	if s.filter && s.keepText() {
		s.out.WriteString(chunk)
	}
}

// 标签模式：反复匹配标签直到 '}' 或串尾
// 未闭合的 '{' 把剩余内容全部当作一个标签区，不报错
func (s *splitter) scanTags() {
	for s.pos < len(s.src) && s.src[s.pos] != '}' {
		if s.src[s.pos] == '\\' {
			s.parseTag()
		} else {
			// 花括号内的注释性内容，整段按未知处理
			start := s.pos
			for s.pos < len(s.src) && s.src[s.pos] != '\\' && s.src[s.pos] != '}' {
				s.pos++
			}
			s.h.Ext(SplitUnknown, s.src[start:s.pos], 0, 0)
			s.keepSpan(SplitUnknown, s.src[start:s.pos])
		}
	}
	if s.pos < len(s.src) {
		s.pos++ // 跳过 '}'
	}
	s.flushGroup()
}

// filter 模式下重新合成当前标签组的花括号，空组整体省略
func (s *splitter) flushGroup() {
	if !s.filter || s.group.Len() == 0 {
		return
	}
	s.out.WriteByte('{')
	s.out.WriteString(s.group.String())
	s.out.WriteByte('}')
	s.group.Reset()
}

func (s *splitter) keepSpan(cat Components, span string) {
	if s.filter && s.keep&cat != 0 {
		s.group.WriteString(span)
	}
}

// 解析从 '\' 开始的一个标签并分发回调
// 无法识别的内容归入未知类别后继续，游标每次至少前进一个字节
func (s *splitter) parseTag() {
	start := s.pos
	s.pos++ // 跳过 '\'
	rest := s.src[s.pos:]

	switch {
	case strings.HasPrefix(rest, "alpha"):
		s.pos += len("alpha")
		v := s.scanHexArg()
		s.h.Alpha(v&0xFF, 0)
		s.keepSpan(SplitAlpha, s.src[start:s.pos])

	case strings.HasPrefix(rest, "an"):
		s.pos += len("an")
		if n, ok := s.scanInt(); ok && n >= 1 && n <= 9 {
			s.h.Alignment(numpadToCombined(n))
			s.keepSpan(SplitAlignment, s.src[start:s.pos])
		} else {
			s.unknownTail(start)
		}

	case strings.HasPrefix(rest, "a"):
		s.pos++
		if a, ok := s.scanInt(); ok {
			s.h.Alignment(legacyToCombined(a))
			s.keepSpan(SplitAlignment, s.src[start:s.pos])
		} else {
			s.unknownTail(start)
		}

	case strings.HasPrefix(rest, "bord"):
		s.pos += len("bord")
		s.numericExt(SplitBorder, start)

	case strings.HasPrefix(rest, "blur"):
		s.pos += len("blur")
		s.numericExt(SplitBlur, start)

	case strings.HasPrefix(rest, "be"):
		s.pos += len("be")
		s.numericExt(SplitBlur, start)

	case strings.HasPrefix(rest, "b"):
		s.styleToggle('b', SplitFontBold, start)

	case strings.HasPrefix(rest, "clip("):
		s.pos += len("clip")
		args, _ := s.scanParenArgs()
		s.h.Ext(SplitClip, args, 0, 0)
		s.keepSpan(SplitClip, s.src[start:s.pos])

	case len(rest) >= 2 && rest[0] >= '1' && rest[0] <= '4' && (rest[1] == 'c' || rest[1] == 'a'):
		id := int(rest[0] - '0')
		kind := rest[1]
		s.pos += 2
		v := s.scanHexArg()
		if kind == 'c' {
			s.h.Color(uint32(v)&0xFFFFFF, id)
			s.keepSpan(SplitColor, s.src[start:s.pos])
		} else {
			s.h.Alpha(v&0xFF, id)
			s.keepSpan(SplitAlpha, s.src[start:s.pos])
		}

	case strings.HasPrefix(rest, "c"):
		s.pos++
		v := s.scanHexArg()
		s.h.Color(uint32(v)&0xFFFFFF, 1) // 裸 \c 作用于主色
		s.keepSpan(SplitColor, s.src[start:s.pos])

	case strings.HasPrefix(rest, "fscx"), strings.HasPrefix(rest, "fscy"):
		s.pos += len("fscx")
		s.numericExt(SplitFontScale, start)

	case strings.HasPrefix(rest, "fsp"):
		s.pos += len("fsp")
		s.numericExt(SplitFontSpacing, start)

	case strings.HasPrefix(rest, "fs"):
		s.pos += len("fs")
		if v, ok := s.scanInt(); ok {
			s.h.FontSize(v)
		} else {
			s.h.FontSize(0) // 裸 \fs 表示恢复默认字号
		}
		s.keepSpan(SplitFontSize, s.src[start:s.pos])

	case strings.HasPrefix(rest, "fn"):
		s.pos += len("fn")
		s.h.FontName(s.scanToDelim())
		s.keepSpan(SplitFontName, s.src[start:s.pos])

	case strings.HasPrefix(rest, "fe"):
		s.pos += len("fe")
		s.numericExt(SplitFontCharset, start)

	case strings.HasPrefix(rest, "frx"), strings.HasPrefix(rest, "fry"), strings.HasPrefix(rest, "frz"):
		s.pos += len("frx")
		s.numericExt(SplitRotate, start)

	case strings.HasPrefix(rest, "fr"):
		s.pos += len("fr")
		s.numericExt(SplitRotate, start)

	case strings.HasPrefix(rest, "fade("), strings.HasPrefix(rest, "fad("):
		if rest[3] == 'e' {
			s.pos += len("fade")
		} else {
			s.pos += len("fad")
		}
		args, _ := s.scanParenArgs()
		s.h.Ext(SplitFade, args, 0, 0)
		s.keepSpan(SplitFade, s.src[start:s.pos])

	case strings.HasPrefix(rest, "iclip("):
		s.pos += len("iclip")
		args, _ := s.scanParenArgs()
		s.h.Ext(SplitClip, args, 1, 0)
		s.keepSpan(SplitClip, s.src[start:s.pos])

	case strings.HasPrefix(rest, "i"):
		s.styleToggle('i', SplitFontItalic, start)

	case strings.HasPrefix(rest, "move("):
		s.pos += len("move")
		args, _ := s.scanParenArgs()
		nums, ok := parseIntArgs(args)
		switch {
		case ok && len(nums) == 4:
			s.h.Move(nums[0], nums[1], nums[2], nums[3], -1, -1)
			s.keepSpan(SplitMove, s.src[start:s.pos])
		case ok && len(nums) == 6:
			s.h.Move(nums[0], nums[1], nums[2], nums[3], nums[4], nums[5])
			s.keepSpan(SplitMove, s.src[start:s.pos])
		default:
			s.h.Ext(SplitUnknown, s.src[start+1:s.pos], 0, 0)
			s.keepSpan(SplitUnknown, s.src[start:s.pos])
		}

	case strings.HasPrefix(rest, "org("):
		s.pos += len("org")
		args, _ := s.scanParenArgs()
		if nums, ok := parseIntArgs(args); ok && len(nums) == 2 {
			s.h.Origin(nums[0], nums[1])
			s.keepSpan(SplitOrigin, s.src[start:s.pos])
		} else {
			s.h.Ext(SplitUnknown, s.src[start+1:s.pos], 0, 0)
			s.keepSpan(SplitUnknown, s.src[start:s.pos])
		}

	case strings.HasPrefix(rest, "pos("):
		s.pos += len("pos")
		args, _ := s.scanParenArgs()
		if nums, ok := parseIntArgs(args); ok && len(nums) == 2 {
			s.h.Pos(nums[0], nums[1])
			s.keepSpan(SplitPos, s.src[start:s.pos])
		} else {
			s.h.Ext(SplitUnknown, s.src[start+1:s.pos], 0, 0)
			s.keepSpan(SplitUnknown, s.src[start:s.pos])
		}

	case strings.HasPrefix(rest, "p"):
		s.pos++
		v, _ := s.scanInt()
		s.drawing = v
		s.h.DrawingMode(v)
		s.keepSpan(SplitDraw, s.src[start:s.pos])

	case strings.HasPrefix(rest, "q"):
		s.pos++
		s.numericExt(SplitWrap, start)

	case strings.HasPrefix(rest, "r"):
		s.pos++
		s.h.CancelOverrides(s.scanToDelim())
		s.keepSpan(SplitCancelling, s.src[start:s.pos])

	case strings.HasPrefix(rest, "shad"):
		s.pos += len("shad")
		s.numericExt(SplitShadow, start)

	case strings.HasPrefix(rest, "s"):
		s.styleToggle('s', SplitFontStrikeout, start)

	case strings.HasPrefix(rest, "t("):
		s.pos++
		args, _ := s.scanParenArgs()
		t1, t2, accel, inner := parseAnimateArgs(args)
		s.h.Animate(t1, t2, accel, inner)
		s.keepSpan(SplitAnimate, s.src[start:s.pos])

	case strings.HasPrefix(rest, "u"):
		s.styleToggle('u', SplitFontUnderline, start)

	default:
		s.unknownTail(start)
	}
}

// \b \i \u \s 开关标签，数字参数为 0 时表示关闭
// \b 允许 400/700 之类的字重值，同样按非零=开启处理
func (s *splitter) styleToggle(code byte, cat Components, start int) {
	s.pos++
	v, ok := s.scanInt()
	close := ok && v == 0
	s.h.Style(code, close)
	s.keepSpan(cat, s.src[start:s.pos])
}

// 数值参数类标签的通用出口
// 回调收到含名称的原始标签文本和取整后的数值
func (s *splitter) numericExt(cat Components, start int) {
	v, _ := s.scanFloat()
	s.h.Ext(cat, s.src[start+1:s.pos], int(v), 0)
	s.keepSpan(cat, s.src[start:s.pos])
}

// 未知标签：吃到下一个 '\' 或 '}'，回调后继续扫描
func (s *splitter) unknownTail(start int) {
	s.scanToDelim()
	s.h.Ext(SplitUnknown, s.src[start+1:s.pos], 0, 0)
	s.keepSpan(SplitUnknown, s.src[start:s.pos])
}

// 读取可选的带符号整数参数，没有数字时游标不动
func (s *splitter) scanInt() (int, bool) {
	p := s.pos
	if p < len(s.src) && (s.src[p] == '-' || s.src[p] == '+') {
		p++
	}
	d := p
	for d < len(s.src) && s.src[d] >= '0' && s.src[d] <= '9' {
		d++
	}
	if d == p {
		return 0, false
	}
	v, err := strconv.Atoi(s.src[s.pos:d])
	if err != nil {
		return 0, false
	}
	s.pos = d
	return v, true
}

// 读取可选的带符号小数参数，没有数字时游标不动
func (s *splitter) scanFloat() (float64, bool) {
	p := s.pos
	if p < len(s.src) && (s.src[p] == '-' || s.src[p] == '+') {
		p++
	}
	d := p
	for d < len(s.src) && s.src[d] >= '0' && s.src[d] <= '9' {
		d++
	}
	if d < len(s.src) && s.src[d] == '.' {
		d++
		for d < len(s.src) && s.src[d] >= '0' && s.src[d] <= '9' {
			d++
		}
	}
	if d == p || (d == p+1 && s.src[p] == '.') {
		return 0, false
	}
	v, err := strconv.ParseFloat(s.src[s.pos:d], 64)
	if err != nil {
		return 0, false
	}
	s.pos = d
	return v, true
}

// 读取 &H 前缀的十六进制参数（&H0000FF& 或 HFF 或裸十六进制都兼容）
func (s *splitter) scanHexArg() int {
	if s.pos < len(s.src) && s.src[s.pos] == '&' {
		s.pos++
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'H' || s.src[s.pos] == 'h') {
		s.pos++
	}
	d := s.pos
	for d < len(s.src) && isHexDigit(s.src[d]) {
		d++
	}
	var v int
	if d > s.pos {
		v64, err := strconv.ParseUint(s.src[s.pos:d], 16, 64)
		if err == nil {
			v = int(v64)
		}
		s.pos = d
	}
	if s.pos < len(s.src) && s.src[s.pos] == '&' {
		s.pos++
	}
	return v
}

// 读取到下一个 '\' 或 '}' 为止的原始内容
func (s *splitter) scanToDelim() string {
	start := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != '\\' && s.src[s.pos] != '}' {
		s.pos++
	}
	return s.src[start:s.pos]
}

// 读取括号参数，返回括号内的原始文本
// \t 的参数里可以嵌套 \clip(...)，用深度计数找配对括号；
// 缺右括号时吃到 '}' 或串尾为止，保证游标前进
func (s *splitter) scanParenArgs() (string, bool) {
	if s.pos >= len(s.src) || s.src[s.pos] != '(' {
		return "", false
	}
	s.pos++
	start := s.pos
	depth := 1
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				inner := s.src[start:s.pos]
				s.pos++
				return inner, true
			}
		case '}':
			return s.src[start:s.pos], true // 未闭合，停在 '}' 前
		}
		s.pos++
	}
	return s.src[start:], true
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// 解析逗号分隔的整数参数表
func parseIntArgs(args string) ([]int, bool) {
	if strings.TrimSpace(args) == "" {
		return nil, false
	}
	parts := strings.Split(args, ",")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		nums = append(nums, v)
	}
	return nums, true
}

// 解析 \t 的参数：前导数字参数 + 未解析的嵌套标签串
// 形式有 (标签) (accel,标签) (t1,t2,标签) (t1,t2,accel,标签)
func parseAnimateArgs(args string) (t1, t2 int, accel float64, inner string) {
	accel = 1.0
	numPart := args
	if i := strings.IndexByte(args, '\\'); i >= 0 {
		numPart = args[:i]
		inner = args[i:]
	} else {
		inner = ""
	}

	var nums []float64
	for _, p := range strings.Split(numPart, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue // 非数字段落忽略，扫描不会因此失败
		}
		nums = append(nums, v)
	}
	switch len(nums) {
	case 1:
		accel = nums[0]
	case 2:
		t1, t2 = int(nums[0]), int(nums[1])
	case 3:
		t1, t2, accel = int(nums[0]), int(nums[1]), nums[2]
	}
	return t1, t2, accel, inner
}

// \an 小键盘值转统一对齐编码（水平 1-3 | 垂直 0=底 4=中 8=顶）
func numpadToCombined(n int) int {
	h := (n-1)%3 + 1
	switch (n - 1) / 3 {
	case 0:
		return h
	case 1:
		return h | 4
	default:
		return h | 8
	}
}

// \a 旧版值转统一对齐编码
func legacyToCombined(a int) int {
	h := a & 3
	switch {
	case a&4 != 0: // 旧版 +4 表示顶部
		return h | 8
	case a&8 != 0: // 旧版 +8 表示中部
		return h | 4
	default:
		return h
	}
}
