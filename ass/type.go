package ass

import (
	"errors"
	"fmt"
)

type ContentInfo struct {
	LineNum    uint   // 行号
	RawContent string // 文本内容
}

type FormatInfo struct {
	Fields []string // 字段名称列表
}

// [Script Info] 区块中的脚本级元数据
// 解析完成后不再修改
type ScriptInfo struct {
	ScriptType string  // 脚本版本（如 v4.00+）
	Collisions string  // 碰撞处理方式 Normal/Reverse
	PlayResX   int     // 脚本坐标参考宽度
	PlayResY   int     // 脚本坐标参考高度
	Timer      float64 // 时间倍率（百分比）
}

// [V4+ Styles] 区块中的单条样式
// 颜色为 0xTTBBGGRR，最高字节是透明度（0 表示完全不透明，与 alpha 相反）
// 插入样式表后不再修改，更新时整条替换
type Style struct {
	Name           string  // 样式名（区分大小写）
	FontName       string  // 字体名
	FontSize       int     // 字号
	PrimaryColor   uint32  // 主颜色
	SecondaryColor uint32  // 次颜色
	OutlineColor   uint32  // 描边颜色
	BackColor      uint32  // 阴影/底框颜色
	Bold           int     // 0 表示常规，-1/1 表示加粗，其余为字重
	Italic         bool    // 是否斜体
	Underline      bool    // 是否下划线
	StrikeOut      bool    // 是否删除线
	ScaleX         float64 // 横向缩放（1.0 为原始大小）
	ScaleY         float64 // 纵向缩放
	Spacing        float64 // 字间距
	Angle          float64 // 旋转角度
	BorderStyle    int     // 1=描边 3=不透明底框
	Outline        float64 // 描边宽度
	Shadow         float64 // 阴影深度
	Alignment      int     // 对齐方式（1-9，小键盘布局）
	MarginL        int     // 左边距
	MarginR        int     // 右边距
	MarginV        int     // 垂直边距
	AlphaLevel     int     // 旧版透明度字段
	Encoding       int     // 字符集编号（Windows charset id）
}

// 一条对话事件
// 字段与 9 字段数据包格式一一对应（ReadOrder,Layer,Style,Name,MarginL,MarginR,MarginV,Effect,Text）
// Start/End 以厘秒计，仅在解析完整 [Events] 区块时填充，数据包格式不携带时间
type Dialog struct {
	ReadOrder int    // 调用方分配的单调序号，用于排序/去重
	Layer     int    // 层号，高层绘制在低层之上
	Start     int    // 起始时间（厘秒）
	End       int    // 结束时间（厘秒）
	Style     string // 样式名引用（不内嵌 Style 指针，按名查找）
	Name      string // 说话人，可为空
	MarginL   int    // 左边距覆盖，0 表示沿用样式默认
	MarginR   int    // 右边距覆盖
	MarginV   int    // 垂直边距覆盖
	Effect    string // 特效字段，本编解码器不解释
	Text      string // 原始文本载荷，唯一需要标签扫描的字段
}

type parseState struct {
	inInfoSection  bool // 是否在 [Script Info] 区块中
	inStyleSection bool // 是否在 [V4 Styles] 区块中
	inEventSection bool // 是否在 [Events] 区块中
}

const (
	DefaultStyleName = "Default" // 默认样式名称
	DefaultPlayResX  = 384       // 默认参考宽度
	DefaultPlayResY  = 288       // 默认参考高度

	defaultFontName    = "Arial" // 默认字体
	defaultFontSize    = 16      // 默认字号
	defaultBoldWeight  = 200     // 默认样式的字重（视觉上加粗）
	defaultOutline     = 2       // 默认描边宽度
	defaultShadow      = 3       // 默认阴影深度
	defaultBorderStyle = 1       // 默认边框样式（描边）
	defaultAlignment   = 2       // 默认对齐（底部居中）

	defaultPrimaryColor = 0x00FFFFFF // 不透明白色
	defaultOutlineColor = 0x00000000 // 不透明黑色
	defaultBackColor    = 0x80000000 // 半透明黑色
)

var (
	ErrInvalidFormatLine  = errors.New("invalid format line")  // Format 行解析失败
	ErrInvalidStyleFormat = errors.New("invalid style format") // Styles 格式解析失败
	ErrMissingFormat      = errors.New("missing format line")  // 缺少格式定义行
	ErrInvalidTimestamp   = errors.New("invalid timestamp")    // 时间戳格式错误
)

// 对话行顶层逗号数量不足
type ErrFieldCount struct {
	line string
	got  int
}

func NewErrFieldCount(line string, got int) *ErrFieldCount {
	return &ErrFieldCount{line: line, got: got}
}

func (e *ErrFieldCount) Error() string {
	return fmt.Sprintf("dialog line has %d fields, expected %d: %q", e.got, dialogFieldCount, e.line)
}

// 数字字段内容非数字
type ErrBadNumber struct {
	field string
	value string
}

func NewErrBadNumber(field string, value string) *ErrBadNumber {
	return &ErrBadNumber{field: field, value: value}
}

func (e *ErrBadNumber) Error() string {
	return fmt.Sprintf("bad number in field %s: %q", e.field, e.value)
}

// 不支持的字符集编号
type ErrUnsupportedCharset int

func NewErrUnsupportedCharset(id int) *ErrUnsupportedCharset {
	e := ErrUnsupportedCharset(id)
	return &e
}

func (e ErrUnsupportedCharset) Error() string {
	return fmt.Sprintf("unsupported charset id: %d", int(e))
}

var _ error = (*ErrFieldCount)(nil)
var _ error = (*ErrBadNumber)(nil)
var _ error = (*ErrUnsupportedCharset)(nil)
