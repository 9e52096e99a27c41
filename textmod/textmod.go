package textmod

import (
	"errors"
	"strings"

	"github.com/Akimio521/asscodec-go/ass"
)

// 文字修改操作
// 全部操作只作用于花括号外的普通文本，标签组和绘图坐标不会被改写
type Operation int

const (
	OpLeet Operation = iota // 黑客语替换
	OpToUpper
	OpToLower
	OpReplaceChars
	OpRemoveChars
	OpReplaceWords
	OpRemoveWords
)

// 黑客语映射表，按下标一一对应
const (
	leetSrc = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	leetDst = "abcd3f6#1jklmn0pq257uvwxyzAB(D3F6#1JKLMN0PQ257UVWXYZ"
)

var (
	ErrFindRequired      = errors.New("textmod: the 'find' parameter is required for this operation")
	ErrReplaceRequired   = errors.New("textmod: the 'replace' parameter is required for this operation")
	ErrLengthMismatch    = errors.New("textmod: 'find' and 'replace' must have the same length")
	ErrWordCountMismatch = errors.New("textmod: the number of words in 'find' and 'replace' must be equal")
	ErrBadCensorChar     = errors.New("textmod: a single censor character must be specified")
	ErrNoWords           = errors.New("textmod: a non-empty word list must be specified")
)

// TextMod 对事件文本执行一种文字修改操作
// 构造后不可变，可被多个协程并发使用
type TextMod struct {
	op           Operation
	findChars    string
	replaceChars string
	findWords    []string
	replaceWords []string
}

func NewLeet() *TextMod {
	return &TextMod{op: OpLeet, findChars: leetSrc, replaceChars: leetDst}
}

func NewCaseMapper(upper bool) *TextMod {
	if upper {
		return &TextMod{op: OpToUpper}
	}
	return &TextMod{op: OpToLower}
}

func NewReplaceChars(find, replace string) (*TextMod, error) {
	if find == "" {
		return nil, ErrFindRequired
	}
	if replace == "" {
		return nil, ErrReplaceRequired
	}
	if len(find) != len(replace) {
		return nil, ErrLengthMismatch
	}
	return &TextMod{op: OpReplaceChars, findChars: find, replaceChars: replace}, nil
}

func NewRemoveChars(chars string) (*TextMod, error) {
	if chars == "" {
		return nil, ErrFindRequired
	}
	return &TextMod{op: OpRemoveChars, findChars: chars}, nil
}

func NewReplaceWords(find, replace []string) (*TextMod, error) {
	if len(find) == 0 {
		return nil, ErrFindRequired
	}
	if len(replace) == 0 {
		return nil, ErrReplaceRequired
	}
	if len(find) != len(replace) {
		return nil, ErrWordCountMismatch
	}
	return &TextMod{op: OpReplaceWords, findWords: find, replaceWords: replace}, nil
}

func NewRemoveWords(words []string) (*TextMod, error) {
	if len(words) == 0 {
		return nil, ErrFindRequired
	}
	return &TextMod{op: OpRemoveWords, findWords: words}, nil
}

// 屏蔽词的遮盖方式
type CensorMode int

const (
	CensorAll           CensorMode = iota // 整词遮盖
	CensorKeepFirst                       // 保留首字母
	CensorKeepFirstLast                   // 保留首尾字母
)

// NewCensor 构造屏蔽词操作：命中的词按遮盖方式替换为 censorChar
func NewCensor(words []string, censorChar byte, mode CensorMode) (*TextMod, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	if censorChar == 0 {
		return nil, ErrBadCensorChar
	}

	replace := make([]string, len(words))
	for i, word := range words {
		masked := []byte(word)
		start, end := 0, len(masked)
		switch mode {
		case CensorKeepFirstLast:
			if len(masked) > 2 {
				start = 1
			}
			if len(masked) > 3 {
				end--
			}
		case CensorKeepFirst:
			if len(masked) > 2 {
				start = 1
			}
		}
		for n := start; n < end; n++ {
			masked[n] = censorChar
		}
		replace[i] = string(masked)
	}
	return &TextMod{op: OpReplaceWords, findWords: words, replaceWords: replace}, nil
}

// Apply 对一条文本载荷执行操作，标签组原样透传
func (tm *TextMod) Apply(text string) string {
	return ass.MapText(text, tm.mapRun)
}

// ApplyDialog 改写事件文本并返回新事件（原事件不动）
func (tm *TextMod) ApplyDialog(d *ass.Dialog) ass.Dialog {
	out := *d
	out.Text = tm.Apply(d.Text)
	return out
}

func (tm *TextMod) mapRun(run string) string {
	switch tm.op {
	case OpLeet, OpReplaceChars:
		return mapChars(run, tm.findChars, tm.replaceChars)
	case OpToUpper:
		return strings.ToUpper(run)
	case OpToLower:
		return strings.ToLower(run)
	case OpRemoveChars:
		return removeChars(run, tm.findChars)
	case OpReplaceWords, OpRemoveWords:
		for i, find := range tm.findWords {
			replace := ""
			if tm.op == OpReplaceWords {
				replace = tm.replaceWords[i]
			}
			run = replaceAllFold(run, find, replace)
		}
		return run
	}
	return run
}

func mapChars(s, src, dst string) string {
	b := []byte(s)
	for n := range b {
		if i := strings.IndexByte(src, b[n]); i >= 0 {
			b[n] = dst[i]
		}
	}
	return string(b)
}

func removeChars(s, chars string) string {
	var b strings.Builder
	b.Grow(len(s))
	for n := 0; n < len(s); n++ {
		if strings.IndexByte(chars, s[n]) < 0 {
			b.WriteByte(s[n])
		}
	}
	return b.String()
}

// 大小写不敏感的全部替换
func replaceAllFold(s, find, replace string) string {
	if find == "" {
		return s
	}
	lower := strings.ToLower(s)
	lf := strings.ToLower(find)

	var b strings.Builder
	i := 0
	for {
		j := strings.Index(lower[i:], lf)
		if j < 0 {
			b.WriteString(s[i:])
			return b.String()
		}
		j += i
		b.WriteString(s[i:j])
		b.WriteString(replace)
		i = j + len(find)
	}
}
