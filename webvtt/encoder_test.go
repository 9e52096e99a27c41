package webvtt

import (
	"strings"
	"testing"

	"github.com/Akimio521/asscodec-go/ass"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, script *ass.ScriptParser, text string) string {
	t.Helper()
	enc := NewEncoder(script)
	return enc.EncodeDialog(&ass.Dialog{Text: text})
}

func TestEncodeDialog(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "纯文本",
			text: "hello world",
			want: "hello world",
		},
		{
			name: "粗体开关",
			text: `{\b1}bold{\b0} plain`,
			want: "<b>bold</b> plain",
		},
		{
			name: "行尾未关闭的标签由End补齐",
			text: `{\i1}slanted`,
			want: "<i>slanted</i>",
		},
		{
			name: "交错标签按栈序关闭",
			text: `{\b1}a{\i1}b{\b0}c`,
			want: "<b>a<i>b</i></b>c",
		},
		{
			name: "关闭不在栈上的标签被忽略",
			text: `a{\i0}b`,
			want: "ab",
		},
		{
			name: "删除线不支持",
			text: `{\s1}x{\s0}y`,
			want: "xy",
		},
		{
			name: "硬空格和换行",
			text: `a\hb\Nc`,
			want: "a&nbsp;b\nc",
		},
		{
			name: "颜色等覆写静默丢弃",
			text: `{\c&HFF&\fs20\pos(1,2)}x`,
			want: "x",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, encode(t, nil, tc.text))
		})
	}
}

const styledScript = `[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, Bold, Italic, Underline
Style: Default,Arial,16,&H00FFFFFF,0,0,0
Style: Bold,Arial,16,&H00FFFFFF,-1,0,0
Style: Fancy,Arial,16,&H00FFFFFF,-1,-1,0
`

func TestStyleApply(t *testing.T) {
	sp, err := ass.ParseScript(styledScript)
	require.NoError(t, err)
	enc := NewEncoder(sp)

	t.Run("样式差异转标签", func(t *testing.T) {
		got := enc.EncodeDialog(&ass.Dialog{Style: "Fancy", Text: "x"})
		require.Equal(t, "<b><i>x</i></b>", got)
	})

	t.Run("与基线一致不产生标签", func(t *testing.T) {
		got := enc.EncodeDialog(&ass.Dialog{Style: "Default", Text: "x"})
		require.Equal(t, "x", got)
	})

	t.Run("样式查不到不报错", func(t *testing.T) {
		got := enc.EncodeDialog(&ass.Dialog{Style: "Nope", Text: "x"})
		require.Equal(t, "x", got)
	})

	t.Run("样式重置后重新应用命名样式", func(t *testing.T) {
		got := enc.EncodeDialog(&ass.Dialog{Style: "Default", Text: `{\b1}x{\rBold}y`})
		require.Equal(t, "<b>x</b><b>y</b>", got)
	})

	t.Run("样式重置回落到行样式", func(t *testing.T) {
		got := enc.EncodeDialog(&ass.Dialog{Style: "Bold", Text: `{\i1}x{\r}y`})
		// \r 关掉全部开放标签后按空样式名查表，查不到就不再打开
		require.Equal(t, "<b><i>x</i></b>y", got)
	})
}

func TestStackOverflow(t *testing.T) {
	var warned []string
	enc := NewEncoder(nil, WithWarnFn(func(msg string) { warned = append(warned, msg) }))

	// 栈满之后继续压栈：告警、截断，但转换继续
	text := strings.Repeat(`{\b1}`, stackSize+2) + "x"
	got := enc.EncodeDialog(&ass.Dialog{Text: text})

	require.Len(t, warned, 2)
	require.Equal(t, stackSize+2, strings.Count(got, "<b>"))
	require.Equal(t, stackSize, strings.Count(got, "</b>")) // 只有入栈的会被关闭
	require.True(t, strings.Contains(got, "x"))
}

func TestFormatTime(t *testing.T) {
	require.Equal(t, "00:00:01.000", FormatTime(100))
	require.Equal(t, "00:01:00.250", FormatTime(6025))
	require.Equal(t, "01:02:03.040", FormatTime(373804))
}

func TestWriteDocument(t *testing.T) {
	script := styledScript + `
[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:05.00,0:00:06.00,Default,,0,0,0,,second
Dialogue: 0,0:00:01.00,0:00:03.50,Bold,,0,0,0,,first{\i1} part{\i0}
Dialogue: 0,0:00:02.00,0:00:02.50,Default,,0,0,0,,{\p1}m 0 0 l 10 10{\p0}
`
	sp, err := ass.ParseScript(script)
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, WriteDocument(&out, sp))

	want := "WEBVTT\n\n" +
		"00:00:01.000 --> 00:00:03.500\n<b>first<i> part</i></b>\n\n" +
		"00:00:05.000 --> 00:00:06.000\nsecond\n\n"
	require.Equal(t, want, out.String())
}
