package srt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Akimio521/asscodec-go/ass"
)

var (
	ErrEmptyDocument = errors.New("srt: no content to convert")
	ErrInvalidTime   = errors.New("srt: invalid time line")
	ErrUnexpectedEOF = errors.New("srt: unexpected end of file")
	ErrInvalidIndex  = errors.New("srt: invalid index line")
)

// 一条 SRT 字幕
type ContentInfo struct {
	Index uint64
	Start int // 厘秒
	End   int // 厘秒
	Text  string
}

type SRTParser struct {
	rawContent []string
	Contents   []ContentInfo
}

func NewSRTParser(reader io.Reader) (*SRTParser, error) {
	p := SRTParser{
		rawContent: make([]string, 0),
		Contents:   make([]ContentInfo, 0),
	}
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		p.rawContent = append(p.rawContent, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to new SRTParser: %w", err)
	}
	return &p, nil
}

func (p *SRTParser) Parse() error {
	p.Contents = p.Contents[:0]

	for i := 0; i < len(p.rawContent); {
		line := strings.TrimSpace(p.rawContent[i])
		if line == "" {
			i++
			continue
		}

		// 尝试解析索引行
		idx, err := strconv.ParseUint(strings.TrimPrefix(line, "\uFEFF"), 10, 64)
		if err != nil {
			return fmt.Errorf("%w at line %d: %q", ErrInvalidIndex, i+1, line)
		}

		i++ // 移动到时间行
		if i >= len(p.rawContent) {
			return fmt.Errorf("%w after index at line %d", ErrUnexpectedEOF, i)
		}

		timeLine := strings.TrimSpace(p.rawContent[i])
		parts := strings.Split(timeLine, "-->")
		if len(parts) != 2 {
			return fmt.Errorf("%w at line %d: %q", ErrInvalidTime, i+1, timeLine)
		}
		start, err := parseTime(strings.TrimSpace(parts[0]))
		if err != nil {
			return fmt.Errorf("%w at line %d: %q", ErrInvalidTime, i+1, timeLine)
		}
		end, err := parseTime(strings.TrimSpace(parts[1]))
		if err != nil {
			return fmt.Errorf("%w at line %d: %q", ErrInvalidTime, i+1, timeLine)
		}

		i++ // 移动到文本行
		// 收集文本行，空行结束当前字幕
		var textLines []string
		for i < len(p.rawContent) {
			line = strings.TrimSpace(p.rawContent[i])
			if line == "" {
				break
			}
			textLines = append(textLines, line)
			i++
		}

		p.Contents = append(p.Contents, ContentInfo{
			Index: idx,
			Start: start,
			End:   end,
			Text:  strings.Join(textLines, "\n"),
		})
	}
	return nil
}

// 转换为 ASS 脚本并写出
// header 为空时使用默认脚本头；keepMarkup 为 true 时原始 ASS 标记原样透传
func (p *SRTParser) ToASS(writer io.Writer, header string, keepMarkup bool) error {
	if len(p.Contents) == 0 {
		return ErrEmptyDocument
	}

	if header == "" {
		header = ass.DefaultFileSubtitleHeader()
	}
	if _, err := io.WriteString(writer, header); err != nil {
		return fmt.Errorf("write ass header error: %w", err)
	}

	for _, content := range p.Contents {
		_, err := fmt.Fprintf(
			writer,
			"Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			FormatASSTime(content.Start),
			FormatASSTime(content.End),
			ass.DefaultStyleName,
			ass.EscapeTextEvent(content.Text, "", keepMarkup),
		)
		if err != nil {
			return fmt.Errorf("write ass event error: %w", err)
		}
	}
	return nil
}
