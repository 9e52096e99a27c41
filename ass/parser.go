package ass

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// 脚本解析器
// 一次解析 [Script Info] / [V4+ Styles] / [Events] 三个区块，
// 重新调用 Parse 时样式表和事件表整体替换
type ScriptParser struct {
	Contents     []ContentInfo // 元素内容
	Info         ScriptInfo    // 脚本元数据
	StyleTable   *StyleTable   // 样式表
	Events       []Dialog      // 对话事件，按出现顺序
	EventFormat  *FormatInfo   // [Events] 表头格式定义
	DroppedLines []uint        // 字段非法被丢弃的 Dialogue 行号

	legacyStyles bool             // 样式区块是否为 [V4 Styles]（SSA 旧版）
	eventIndex   map[int]eventRef // Contents 下标 -> 事件表位置
}

// 原始行到事件表的映射
// textOffset 是 Text 字段在原始行中的字节偏移，重写时从这里截断
type eventRef struct {
	event      int
	textOffset int
}

func NewScriptParser(reader io.Reader) (*ScriptParser, error) {
	sp := &ScriptParser{
		Contents: make([]ContentInfo, 0, 200),
	}

	var lineNum uint = 0
	var inBinarySection = false
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text() // 读取一行
		temp := strings.TrimSpace(strings.ToLower(line))

		switch temp {
		case "[fonts]", "[graphics]":
			inBinarySection = true // 跳过内嵌字体/图片区块
			continue
		case "[events]", "[script info]", "[v4 styles]", "[v4+ styles]":
			inBinarySection = false
		}
		if !inBinarySection {
			sp.Contents = append(sp.Contents, ContentInfo{LineNum: lineNum, RawContent: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to new ScriptParser: %w", err)
	}
	return sp, nil
}

// 从字符串解析脚本头（或完整脚本），常用于外部传入的 header blob
func ParseScript(buf string) (*ScriptParser, error) {
	sp, err := NewScriptParser(strings.NewReader(buf))
	if err != nil {
		return nil, err
	}
	if err := sp.Parse(); err != nil {
		return nil, err
	}
	return sp, nil
}

func (sp *ScriptParser) Parse() error {
	// 整表替换，不在旧表上原地修改
	sp.Info = ScriptInfo{
		Collisions: "Normal",
		PlayResX:   DefaultPlayResX,
		PlayResY:   DefaultPlayResY,
		Timer:      100.0,
	}
	sp.StyleTable = NewStyleTable()
	sp.Events = sp.Events[:0]
	sp.EventFormat = nil
	sp.DroppedLines = sp.DroppedLines[:0]
	sp.eventIndex = make(map[int]eventRef)
	sp.legacyStyles = false

	var s parseState
	var err error
	for i := range sp.Contents {
		s, err = sp.parseContent(i, s)
		if err != nil {
			return fmt.Errorf("failed to parse ass content at line %d: %w", sp.Contents[i].LineNum, err)
		}
	}
	return nil
}

func (sp *ScriptParser) parseContent(i int, s parseState) (parseState, error) {
	ci := sp.Contents[i]
	raw := ci.RawContent

	// 检查区块开始
	switch {
	case startWith(raw, "[Script Info]"):
		s = parseState{inInfoSection: true}
		return s, nil
	case startWith(raw, "[V4+ Styles]"):
		s = parseState{inStyleSection: true}
		sp.styleFormat(nil) // 重置格式定义
		sp.legacyStyles = false
		return s, nil
	case startWith(raw, "[V4 Styles]"):
		s = parseState{inStyleSection: true}
		sp.styleFormat(nil)
		sp.legacyStyles = true
		return s, nil
	case startWith(raw, "[Events]"):
		s = parseState{inEventSection: true}
		sp.EventFormat = nil
		return s, nil
	case startWith(raw, "["):
		return parseState{}, nil
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return s, nil // 空行和注释
	}

	// 根据当前状态处理行
	switch {
	case s.inInfoSection:
		sp.parseInfoLine(trimmed)

	case s.inStyleSection && startWith(raw, "Format:"):
		format, err := ParseFormat(raw)
		if err != nil {
			return s, err
		}
		sp.styleFormat(format)

	case s.inStyleSection && startWith(raw, "Style:"):
		if sp.StyleTable.Format == nil {
			return s, ErrMissingFormat
		}
		fields, err := ParseDataLine(raw, sp.StyleTable.Format)
		if err != nil {
			return s, ErrInvalidStyleFormat
		}
		sp.StyleTable.Append(sp.styleFromFields(fields))

	case s.inEventSection && startWith(raw, "Format:"):
		format, err := ParseFormat(raw)
		if err != nil {
			return s, err
		}
		sp.EventFormat = format

	case s.inEventSection && startWith(raw, "Dialogue:"):
		if sp.EventFormat == nil {
			return s, ErrMissingFormat
		}
		// 单条事件字段非法时丢弃该行继续解析，不让整个脚本失败
		fields, err := ParseDataLine(raw, sp.EventFormat)
		if err != nil {
			sp.DroppedLines = append(sp.DroppedLines, ci.LineNum)
			return s, nil
		}
		d, err := sp.dialogFromFields(fields)
		if err != nil {
			sp.DroppedLines = append(sp.DroppedLines, ci.LineNum)
			return s, nil
		}
		sp.eventIndex[i] = eventRef{
			event:      len(sp.Events),
			textOffset: textFieldOffset(raw, sp.EventFormat),
		}
		sp.Events = append(sp.Events, *d)
	}
	return s, nil
}

func (sp *ScriptParser) styleFormat(format *FormatInfo) {
	if sp.StyleTable == nil {
		sp.StyleTable = NewStyleTable()
	}
	sp.StyleTable.Format = format
}

// 处理 [Script Info] 区块中的 Key: Value 行，未知键忽略
func (sp *ScriptParser) parseInfoLine(line string) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])

	switch key {
	case "ScriptType":
		sp.Info.ScriptType = value
	case "Collisions":
		sp.Info.Collisions = value
	case "PlayResX":
		if v, err := parseIntField(key, value); err == nil {
			sp.Info.PlayResX = v
		}
	case "PlayResY":
		if v, err := parseIntField(key, value); err == nil {
			sp.Info.PlayResY = v
		}
	case "Timer":
		if v, err := parseFloatField(key, value); err == nil && v > 0 {
			sp.Info.Timer = v
		}
	}
}

// 将 Format 映射出的字段转换为类型化样式
// 单个字段解析失败时保留默认值，不丢弃整条样式
func (sp *ScriptParser) styleFromFields(fields map[string]string) Style {
	style := DefaultStyle()

	if v, ok := fields["Name"]; ok && v != "" {
		style.Name = v
	}
	if v, ok := fields["Fontname"]; ok && v != "" {
		style.FontName = strings.TrimPrefix(v, "@") // 去掉纵排前缀 @（如果有的话）
	}
	if v, ok := fields["Fontsize"]; ok {
		if size, err := parseFloatField("Fontsize", v); err == nil {
			style.FontSize = int(size)
		}
	}
	if v, ok := fields["PrimaryColour"]; ok {
		if c, err := parseColorField(v); err == nil {
			style.PrimaryColor = c
		}
	}
	if v, ok := fields["SecondaryColour"]; ok {
		if c, err := parseColorField(v); err == nil {
			style.SecondaryColor = c
		}
	}
	// SSA 旧版把描边色叫 TertiaryColour
	for _, key := range []string{"OutlineColour", "TertiaryColour"} {
		if v, ok := fields[key]; ok {
			if c, err := parseColorField(v); err == nil {
				style.OutlineColor = c
			}
		}
	}
	if v, ok := fields["BackColour"]; ok {
		if c, err := parseColorField(v); err == nil {
			style.BackColor = c
		}
	}
	if v, ok := fields["Bold"]; ok {
		if b, err := parseIntField("Bold", v); err == nil {
			style.Bold = b
		}
	}
	if v, ok := fields["Italic"]; ok {
		style.Italic = parseBoolField(v)
	}
	if v, ok := fields["Underline"]; ok {
		style.Underline = parseBoolField(v)
	}
	if v, ok := fields["StrikeOut"]; ok {
		style.StrikeOut = parseBoolField(v)
	}
	// 文件中的缩放是百分比
	if v, ok := fields["ScaleX"]; ok {
		if f, err := parseFloatField("ScaleX", v); err == nil {
			style.ScaleX = f / 100.0
		}
	}
	if v, ok := fields["ScaleY"]; ok {
		if f, err := parseFloatField("ScaleY", v); err == nil {
			style.ScaleY = f / 100.0
		}
	}
	if v, ok := fields["Spacing"]; ok {
		if f, err := parseFloatField("Spacing", v); err == nil {
			style.Spacing = f
		}
	}
	if v, ok := fields["Angle"]; ok {
		if f, err := parseFloatField("Angle", v); err == nil {
			style.Angle = f
		}
	}
	if v, ok := fields["BorderStyle"]; ok {
		if b, err := parseIntField("BorderStyle", v); err == nil {
			style.BorderStyle = b
		}
	}
	if v, ok := fields["Outline"]; ok {
		if f, err := parseFloatField("Outline", v); err == nil {
			style.Outline = f
		}
	}
	if v, ok := fields["Shadow"]; ok {
		if f, err := parseFloatField("Shadow", v); err == nil {
			style.Shadow = f
		}
	}
	if v, ok := fields["Alignment"]; ok {
		if a, err := parseIntField("Alignment", v); err == nil {
			if sp.legacyStyles {
				a = legacyToNumpad(a)
			}
			style.Alignment = a
		}
	}
	if v, ok := fields["MarginL"]; ok {
		if m, err := parseIntField("MarginL", v); err == nil {
			style.MarginL = m
		}
	}
	if v, ok := fields["MarginR"]; ok {
		if m, err := parseIntField("MarginR", v); err == nil {
			style.MarginR = m
		}
	}
	if v, ok := fields["MarginV"]; ok {
		if m, err := parseIntField("MarginV", v); err == nil {
			style.MarginV = m
		}
	}
	if v, ok := fields["AlphaLevel"]; ok {
		if a, err := parseIntField("AlphaLevel", v); err == nil {
			style.AlphaLevel = a
		}
	}
	if v, ok := fields["Encoding"]; ok {
		if e, err := parseIntField("Encoding", v); err == nil {
			style.Encoding = e
		}
	}
	return style
}

// SSA 旧版对齐值（\a 编码）转小键盘布局
func legacyToNumpad(a int) int {
	h := a & 3
	if h == 0 {
		h = 2
	}
	switch {
	case a&4 != 0: // 顶部
		return h + 6
	case a&8 != 0: // 中部
		return h + 3
	default: // 底部
		return h
	}
}

// 将 Format 映射出的字段转换为对话事件
// ReadOrder 按事件出现顺序分配（脚本文件本身没有该字段）
func (sp *ScriptParser) dialogFromFields(fields map[string]string) (*Dialog, error) {
	d := &Dialog{
		ReadOrder: len(sp.Events),
		Style:     fields["Style"],
		Name:      fields["Name"],
		Effect:    fields["Effect"],
		Text:      fields["Text"],
	}

	if v, ok := fields["ReadOrder"]; ok {
		ro, err := parseIntField("ReadOrder", v)
		if err != nil {
			return nil, err
		}
		d.ReadOrder = ro
	}
	if v, ok := fields["Layer"]; ok {
		layer, err := parseIntField("Layer", v)
		if err != nil {
			return nil, err
		}
		d.Layer = layer
	}
	if v, ok := fields["Start"]; ok {
		start, err := parseTimestamp(v)
		if err != nil {
			return nil, err
		}
		d.Start = start
	}
	if v, ok := fields["End"]; ok {
		end, err := parseTimestamp(v)
		if err != nil {
			return nil, err
		}
		d.End = end
	}
	for key, dst := range map[string]*int{"MarginL": &d.MarginL, "MarginR": &d.MarginR, "MarginV": &d.MarginV} {
		if v, ok := fields[key]; ok && v != "" {
			m, err := parseIntField(key, v)
			if err != nil {
				return nil, err
			}
			*dst = m
		}
	}
	return d, nil
}

// 根据对话的样式引用查样式，查不到时回退到默认样式
func (sp *ScriptParser) StyleOf(d *Dialog) Style {
	if sp.StyleTable != nil {
		if style := sp.StyleTable.Get(d.Style); style != nil {
			return *style
		}
	}
	return DefaultStyle()
}

// Text 字段在原始数据行中的字节偏移
// 按格式定义数过前面的逗号得到，与 ParseDataLine 的切分规则一致；
// 格式里没有 Text 或逗号不足时返回 len(raw)，重写退化为追加
func textFieldOffset(raw string, format *FormatInfo) int {
	textIdx := -1
	for i, f := range format.Fields {
		if f == "Text" {
			textIdx = i
			break
		}
	}
	if textIdx < 0 {
		return len(raw)
	}

	pos := strings.IndexByte(raw, ':')
	if pos < 0 {
		return len(raw)
	}
	pos++
	for pos < len(raw) && (raw[pos] == ' ' || raw[pos] == '\t') {
		pos++
	}
	for k := 0; k < textIdx; k++ {
		c := strings.IndexByte(raw[pos:], ',')
		if c < 0 {
			return len(raw)
		}
		pos += c + 1
	}
	return pos
}

// 逐行写出脚本，[Events] 区块中的每条 Dialogue 行把文本载荷交给 transform 重写
// transform 返回 false 时整行丢弃，其余行原样透传
func (sp *ScriptParser) WriteScript(writer io.Writer, transform func(d *Dialog) (string, bool)) error {
	for i, ci := range sp.Contents {
		line := ci.RawContent

		if ref, ok := sp.eventIndex[i]; ok && transform != nil {
			d := sp.Events[ref.event] // 副本，transform 不会污染事件表
			newText, keep := transform(&d)
			if !keep {
				continue
			}
			// 在解析时记下的 Text 字节偏移处截断重写，
			// 不做后缀长度运算（行尾空白属于载荷，长度推算会错位）
			line = line[:ref.textOffset] + newText
		}

		if _, err := io.WriteString(writer, line+"\n"); err != nil {
			return fmt.Errorf("write script error at line %d: %w", ci.LineNum, err)
		}
	}
	return nil
}
