package ass

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// 录制回调顺序的 Handler，便于断言扫描结果
type recorder struct {
	NopHandler
	calls []string
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Text(text string)          { r.log("text(%q)", text) }
func (r *recorder) HardSpace()                { r.log("hardspace") }
func (r *recorder) NewLine(forced bool)       { r.log("newline(%v)", forced) }
func (r *recorder) Style(code byte, cl bool)  { r.log("style(%c,%v)", code, cl) }
func (r *recorder) Color(v uint32, id int)    { r.log("color(%06X,%d)", v, id) }
func (r *recorder) Alpha(v int, id int)       { r.log("alpha(%02X,%d)", v, id) }
func (r *recorder) FontName(name string)      { r.log("fontname(%s)", name) }
func (r *recorder) FontSize(size int)         { r.log("fontsize(%d)", size) }
func (r *recorder) Alignment(a int)           { r.log("align(%d)", a) }
func (r *recorder) CancelOverrides(s string)  { r.log("cancel(%q)", s) }
func (r *recorder) Pos(x, y int)              { r.log("pos(%d,%d)", x, y) }
func (r *recorder) Origin(x, y int)           { r.log("org(%d,%d)", x, y) }
func (r *recorder) DrawingMode(scale int)     { r.log("draw(%d)", scale) }
func (r *recorder) Move(x1, y1, x2, y2, t1, t2 int) {
	r.log("move(%d,%d,%d,%d,%d,%d)", x1, y1, x2, y2, t1, t2)
}
func (r *recorder) Animate(t1, t2 int, accel float64, inner string) {
	r.log("animate(%d,%d,%g,%q)", t1, t2, accel, inner)
}
func (r *recorder) Ext(id Components, tag string, p1, p2 int) {
	r.log("ext(%d,%q,%d,%d)", id, tag, p1, p2)
}
func (r *recorder) End() { r.log("end") }

func TestSplitOverrideCodes(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "纯文本",
			text: "hello world",
			want: []string{`text("hello world")`, "end"},
		},
		{
			name: "空载荷也回调End",
			text: "",
			want: []string{"end"},
		},
		{
			name: "粗体开关",
			text: `{\b1}X{\b0}Y`,
			want: []string{"style(b,false)", `text("X")`, "style(b,true)", `text("Y")`, "end"},
		},
		{
			name: "字重值非零按开启处理",
			text: `{\b700}X`,
			want: []string{"style(b,false)", `text("X")`, "end"},
		},
		{
			name: "硬空格和两种换行",
			text: `a\hb\Nc\nd`,
			want: []string{`text("a")`, "hardspace", `text("b")`, "newline(true)",
				`text("c")`, "newline(false)", `text("d")`, "end"},
		},
		{
			name: "颜色与透明度",
			text: `{\c&HFF00FF&\1a&H80&\alpha&HFF&}x`,
			want: []string{"color(FF00FF,1)", "alpha(80,1)", "alpha(FF,0)", `text("x")`, "end"},
		},
		{
			name: "编号颜色通道",
			text: `{\2c&H123456&\4c&HABCDEF&}x`,
			want: []string{"color(123456,2)", "color(ABCDEF,4)", `text("x")`, "end"},
		},
		{
			name: "字体名吃到下一个反斜杠",
			text: `{\fnComic Sans MS\fs24}x`,
			want: []string{"fontname(Comic Sans MS)", "fontsize(24)", `text("x")`, "end"},
		},
		{
			name: "pos和move是不同回调",
			text: `{\pos(10,20)}a{\move(1,2,3,4)}b`,
			want: []string{"pos(10,20)", `text("a")`, "move(1,2,3,4,-1,-1)", `text("b")`, "end"},
		},
		{
			name: "带时间的move",
			text: `{\move(0,0,100,200,500,1500)}x`,
			want: []string{"move(0,0,100,200,500,1500)", `text("x")`, "end"},
		},
		{
			name: "旋转原点",
			text: `{\org(192,144)}x`,
			want: []string{"org(192,144)", `text("x")`, "end"},
		},
		{
			name: "小键盘对齐转统一编码",
			text: `{\an8}x`,
			want: []string{"align(10)", `text("x")`, "end"},
		},
		{
			name: "旧版对齐的顶部中部与小键盘相反",
			text: `{\a6}x{\a10}y`,
			want: []string{"align(10)", `text("x")`, "align(6)", `text("y")`, "end"},
		},
		{
			name: "样式重置",
			text: `{\rAlt}x{\r}y`,
			want: []string{`cancel("Alt")`, `text("x")`, `cancel("")`, `text("y")`, "end"},
		},
		{
			name: "绘图模式跨越花括号组",
			text: `{\p1}m 0 0 l 100 0{\p0}after`,
			want: []string{"draw(1)", `text("m 0 0 l 100 0")`, "draw(0)", `text("after")`, "end"},
		},
		{
			name: "动画参数与嵌套标签",
			text: `{\t(500,1500,0.5,\fs40\c&HFF&)}x`,
			want: []string{`animate(500,1500,0.5,"\\fs40\\c&HFF&")`, `text("x")`, "end"},
		},
		{
			name: "动画只有加速度",
			text: `{\t(2,\frz360)}x`,
			want: []string{`animate(0,0,2,"\\frz360")`, `text("x")`, "end"},
		},
		{
			name: "动画参数里嵌套clip的括号配对",
			text: `{\t(0,500,\clip(0,0,100,100))}x`,
			want: []string{`animate(0,500,1,"\\clip(0,0,100,100)")`, `text("x")`, "end"},
		},
		{
			name: "未知标签不致命",
			text: `{\xyz42}x`,
			want: []string{fmt.Sprintf(`ext(%d,"xyz42",0,0)`, SplitUnknown), `text("x")`, "end"},
		},
		{
			name: "未闭合花括号吞掉剩余内容",
			text: `a{\b1\i1`,
			want: []string{`text("a")`, "style(b,false)", "style(i,false)", "end"},
		},
		{
			name: "多余的右花括号静默跳过",
			text: `a}b`,
			want: []string{`text("a")`, `text("b")`, "end"},
		},
		{
			name: "非法move坐标归入未知",
			text: `{\move(a,b,c,d)}x`,
			want: []string{fmt.Sprintf(`ext(%d,"move(a,b,c,d)",0,0)`, SplitUnknown), `text("x")`, "end"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := &recorder{}
			SplitOverrideCodes(r, tc.text)
			require.Equal(t, tc.want, r.calls)
		})
	}
}

func TestSplitOverrideCodesExt(t *testing.T) {
	testCases := []struct {
		name string
		text string
		id   Components
		tag  string
		p1   int
	}{
		{"描边", `{\bord4}x`, SplitBorder, "bord4", 4},
		{"阴影", `{\shad2}x`, SplitShadow, "shad2", 2},
		{"高斯模糊", `{\blur3.5}x`, SplitBlur, "blur3.5", 3},
		{"边缘模糊", `{\be1}x`, SplitBlur, "be1", 1},
		{"横向缩放", `{\fscx150}x`, SplitFontScale, "fscx150", 150},
		{"纵向缩放", `{\fscy50}x`, SplitFontScale, "fscy50", 50},
		{"字间距", `{\fsp-2}x`, SplitFontSpacing, "fsp-2", -2},
		{"字符集", `{\fe134}x`, SplitFontCharset, "fe134", 134},
		{"Z轴旋转", `{\frz180}x`, SplitRotate, "frz180", 180},
		{"fr等价于frz", `{\fr45}x`, SplitRotate, "fr45", 45},
		{"X轴旋转", `{\frx-30.5}x`, SplitRotate, "frx-30.5", -30},
		{"换行策略", `{\q2}x`, SplitWrap, "q2", 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := &recorder{}
			SplitOverrideCodes(r, tc.text)
			require.Contains(t, r.calls, fmt.Sprintf("ext(%d,%q,%d,0)", tc.id, tc.tag, tc.p1))
		})
	}
}

func TestSplitFadeAndClip(t *testing.T) {
	r := &recorder{}
	SplitOverrideCodes(r, `{\fad(200,300)\clip(0,0,50,50)\iclip(1,2,3,4)}x`)
	require.Equal(t, []string{
		fmt.Sprintf("ext(%d,%q,0,0)", SplitFade, "200,300"),
		fmt.Sprintf("ext(%d,%q,0,0)", SplitClip, "0,0,50,50"),
		fmt.Sprintf("ext(%d,%q,1,0)", SplitClip, "1,2,3,4"),
		`text("x")`,
		"end",
	}, r.calls)
}

func TestFilterOverrideCodes(t *testing.T) {
	testCases := []struct {
		name string
		text string
		keep Components
		want string
	}{
		{
			name: "全删只留文本",
			text: `{\b1\c&HFF&}hello{\b0} world`,
			keep: SplitText,
			want: "hello world",
		},
		{
			name: "保留全部已知标签则原样重建",
			text: `{\b1\pos(10,20)}hi{\b0}`,
			keep: SplitText | SplitAllKnown,
			want: `{\b1\pos(10,20)}hi{\b0}`,
		},
		{
			name: "只保留颜色",
			text: `{\b1\c&HFF00FF&\fs20}x`,
			keep: SplitText | SplitColor,
			want: `{\c&HFF00FF&}x`,
		},
		{
			name: "空标签组整体省略",
			text: `{\t(0,500,\fs40)}move on`,
			keep: SplitText | SplitBasic,
			want: "move on",
		},
		{
			name: "文本被滤掉时只剩标签",
			text: `{\pos(1,2)}secret`,
			keep: SplitPos,
			want: `{\pos(1,2)}`,
		},
		{
			name: "未知标签默认删除",
			text: `{\xyz}keep`,
			keep: SplitText | SplitAllKnown,
			want: "keep",
		},
		{
			name: "保留未知标签",
			text: `{\xyz}keep`,
			keep: SplitText | SplitUnknown,
			want: `{\xyz}keep`,
		},
		{
			name: "文本转义原样保留",
			text: `a\hb\Nc{\b1}d`,
			keep: SplitText,
			want: `a\hb\Nc` + "d",
		},
		{
			name: "相邻标签组各自重建",
			text: `{\b1}{\i1}x`,
			keep: SplitText | SplitFontItalic,
			want: `{\i1}x`,
		},
		{
			name: "掩码为空输出为空",
			text: `{\b1}x`,
			keep: 0,
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterOverrideCodes(nil, tc.text, tc.keep)
			require.Equal(t, tc.want, got)
		})
	}
}

// 被滤掉的标签依然触发回调
func TestFilterStillDispatches(t *testing.T) {
	r := &recorder{}
	out := FilterOverrideCodes(r, `{\p1}m 0 0{\p0}x`, SplitText)
	require.Equal(t, "m 0 0x", out)
	require.Contains(t, r.calls, "draw(1)")
	require.Contains(t, r.calls, "draw(0)")
}

func TestFirstLiteralOffset(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want int
	}{
		{"没有标签", "abc", 0},
		{"单个标签组", `{\b1}abc`, 5},
		{"连续标签组", `{\b1}{\i1}abc`, 10},
		{"未闭合花括号", `{\b1 abc`, 8},
		{"整条都是标签", `{\b1}`, 5},
		{"空串", "", 0},
		{"多余右花括号跳过", `}abc`, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FirstLiteralOffset(tc.text))
		})
	}
}

func TestMapText(t *testing.T) {
	upper := strings.ToUpper

	testCases := []struct {
		name string
		text string
		want string
	}{
		{"纯文本改写", "hello", "HELLO"},
		{"标签组不被改写", `{\b1}hello{\b0} world`, `{\b1}HELLO{\b0} WORLD`},
		{"转义不经过改写函数", `a\Nb`, `A\NB`},
		{"绘图坐标不被改写", `{\p1}m 0 0 l 1 1{\p0}text`, `{\p1}m 0 0 l 1 1{\p0}TEXT`},
		{"字体名参数不被改写", `{\fnarial}x`, `{\fnarial}X`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, MapText(tc.text, upper))
		})
	}
}

func TestSplitPresets(t *testing.T) {
	// 预设集合互不越界：基础集不含动态标签，全集不含未知位
	require.Zero(t, SplitBasic&(SplitMove|SplitAnimate|SplitFade|SplitClip|SplitDraw))
	require.Zero(t, SplitAllKnown&SplitUnknown)
	require.Equal(t, SplitAllKnown, SplitAllKnown|SplitBasic)
}
