package ass

import (
	"fmt"
	"strconv"
	"strings"
)

// 判断字符串是否有前缀（不区分大小写）
func startWith(raw string, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(raw), strings.ToLower(prefix))
}

// 解析格式定义行（Format:）
func ParseFormat(line string) (*FormatInfo, error) {
	// Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidFormatLine
	}

	fieldNames := strings.Split(strings.TrimSpace(parts[1]), ",")

	// 清理字段名称
	for i := range fieldNames {
		fieldNames[i] = strings.TrimSpace(fieldNames[i])
	}

	return &FormatInfo{Fields: fieldNames}, nil
}

// 解析数据行（Style: 或 Dialogue:）并按格式定义返回字段映射
// 最后一个字段吃掉行内剩余的全部内容，内部的逗号不再切分
func ParseDataLine(line string, format *FormatInfo) (map[string]string, error) {
	// Style: Default,方正准圆_GBK,48,&H00FFFFFF,&HF0000000,&H00665806,&H0058281B,0,0,0,0,100,100,1,0,1,2,0,2,30,30,10,1
	// Dialogue: 1,0:56:02.80,0:56:08.34,OP-JP,,0,0,10,,{\an2\c&HFFFFFF&\bord4\blur3\fs50\3c&HA0350D&}突然降る夕立　あぁ傘もないや嫌

	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidFormatLine
	}

	// 只修剪前导空白，末尾空白属于最后一个字段（Text 需要逐字节保留）
	fieldCount := len(format.Fields)
	values := strings.SplitN(strings.TrimLeft(parts[1], " \t"), ",", fieldCount)

	result := make(map[string]string)

	// 将分割的值与对应的字段名进行映射
	for i := 0; i < fieldCount && i < len(values); i++ {
		if format.Fields[i] == "Text" {
			result[format.Fields[i]] = values[i] // 文本载荷原样保留
		} else {
			result[format.Fields[i]] = strings.TrimSpace(values[i])
		}
	}

	return result, nil
}

func parseIntField(field string, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, NewErrBadNumber(field, value)
	}
	return v, nil
}

func parseFloatField(field string, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, NewErrBadNumber(field, value)
	}
	return v, nil
}

// 解析样式颜色字段
// 常见写法有 &H00FFFFFF、&HFFFFFF&、H80000000 和十进制数字，全部兼容
func parseColorField(value string) (uint32, error) {
	s := strings.TrimSpace(value)
	hex := false
	if strings.HasPrefix(s, "&") {
		s = strings.TrimPrefix(s, "&")
		hex = true
	}
	if strings.HasPrefix(s, "H") || strings.HasPrefix(s, "h") {
		s = s[1:]
		hex = true
	}
	s = strings.TrimSuffix(s, "&")
	if s == "" {
		return 0, NewErrBadNumber("Colour", value)
	}

	base := 10
	if hex {
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, NewErrBadNumber("Colour", value)
	}
	return uint32(v), nil
}

// SSA 的布尔字段用 -1 表示真、0 表示假
func parseBoolField(value string) bool {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	return err == nil && v != 0
}

// 解析 H:MM:SS.CC 形式的时间戳，返回厘秒
func parseTimestamp(value string) (int, error) {
	s := strings.TrimSpace(value)
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || sec < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}

	return h*360000 + m*6000 + int(sec*100+0.5), nil
}

// 将厘秒格式化为 H:MM:SS.CC
func formatTimestamp(cs int) string {
	if cs < 0 {
		cs = 0
	}
	return fmt.Sprintf("%d:%02d:%02d.%02d",
		cs/360000, cs/6000%60, cs/100%60, cs%100)
}
