package srt

import (
	"fmt"
	"strconv"
	"strings"
)

// 解析 HH:MM:SS,mmm 形式的 SRT 时间戳，返回厘秒
// 毫秒分隔符兼容逗号和句点，毫秒位数不足按 0 补齐
func parseTime(s string) (int, error) {
	s = strings.Replace(s, ",", ".", 1)

	var millis int
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		frac := s[dot+1:]
		s = s[:dot]
		for len(frac) < 3 {
			frac += "0"
		}
		v, err := strconv.Atoi(frac[:3])
		if err != nil {
			return 0, fmt.Errorf("invalid millis %q", frac)
		}
		millis = v
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q", parts[0])
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes %q", parts[1])
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds %q", parts[2])
	}

	return h*360000 + m*6000 + sec*100 + (millis+5)/10, nil
}

// 厘秒转 ASS 的 H:MM:SS.CC
func FormatASSTime(cs int) string {
	if cs < 0 {
		cs = 0
	}
	return fmt.Sprintf("%d:%02d:%02d.%02d",
		cs/360000, cs/6000%60, cs/100%60, cs%100)
}

// 厘秒转 SRT 的 HH:MM:SS,mmm
func FormatSRTTime(cs int) string {
	if cs < 0 {
		cs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d,%03d",
		cs/360000, cs/6000%60, cs/100%60, cs%100*10)
}
