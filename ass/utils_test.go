package ass

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  int
		isErr bool
	}{
		{name: "整秒", value: "0:00:01.00", want: 100},
		{name: "带厘秒", value: "0:01:00.25", want: 6025},
		{name: "带小时", value: "1:02:03.04", want: 373804},
		{name: "前后空白", value: " 0:00:05.50 ", want: 550},
		{name: "缺少冒号", value: "00:01.00", isErr: true},
		{name: "非数字", value: "a:00:01.00", isErr: true},
		{name: "负秒数", value: "0:00:-1.00", isErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseTimestamp(tc.value)
			if tc.isErr {
				require.ErrorIs(t, err, ErrInvalidTimestamp)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	require.Equal(t, "0:00:01.00", formatTimestamp(100))
	require.Equal(t, "0:01:00.25", formatTimestamp(6025))
	require.Equal(t, "1:02:03.04", formatTimestamp(373804))
	require.Equal(t, "0:00:00.00", formatTimestamp(-5)) // 负值按零处理
}

// 时间戳格式化再解析可逆
func TestTimestampRoundTrip(t *testing.T) {
	for _, cs := range []int{0, 1, 99, 100, 6025, 359999, 360000, 373804} {
		got, err := parseTimestamp(formatTimestamp(cs))
		require.NoError(t, err)
		require.Equal(t, cs, got)
	}
}

func TestParseColorField(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  uint32
		isErr bool
	}{
		{name: "标准写法", value: "&H00FFFFFF", want: 0x00FFFFFF},
		{name: "带尾部与号", value: "&HFFFFFF&", want: 0x00FFFFFF},
		{name: "只有H前缀", value: "H80000000", want: 0x80000000},
		{name: "十进制", value: "16777215", want: 0x00FFFFFF},
		{name: "小写h", value: "&hff", want: 0xFF},
		{name: "空串", value: "", isErr: true},
		{name: "非法十六进制", value: "&HXYZ", isErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseColorField(tc.value)
			if tc.isErr {
				var bn *ErrBadNumber
				require.ErrorAs(t, err, &bn)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseBoolField(t *testing.T) {
	require.True(t, parseBoolField("-1"))
	require.True(t, parseBoolField("1"))
	require.False(t, parseBoolField("0"))
	require.False(t, parseBoolField("abc"))
}

func TestParseDataLineLastField(t *testing.T) {
	format := &FormatInfo{Fields: []string{"Layer", "Text"}}
	fields, err := ParseDataLine("Dialogue: 0,a, b ,c", format)
	require.NoError(t, err)
	require.Equal(t, "0", fields["Layer"])
	require.Equal(t, "a, b ,c", fields["Text"]) // 最后一个字段原样吃掉剩余内容

	fields, err = ParseDataLine("Dialogue: 0,a, b ,c  ", format)
	require.NoError(t, err)
	require.Equal(t, "a, b ,c  ", fields["Text"]) // 行尾空白也属于文本载荷
}

func TestLegacyToNumpad(t *testing.T) {
	testCases := []struct {
		name   string
		legacy int
		want   int
	}{
		{"底部居左", 1, 1},
		{"底部居中", 2, 2},
		{"底部居右", 3, 3},
		{"顶部居左", 5, 7},
		{"顶部居中", 6, 8},
		{"顶部居右", 7, 9},
		{"中部居左", 9, 4},
		{"中部居中", 10, 5},
		{"中部居右", 11, 6},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, legacyToNumpad(tc.legacy))
		})
	}
}
