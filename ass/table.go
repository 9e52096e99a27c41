package ass

// 样式表结构体
// 样式插入后不可变，同名样式整条替换
// 加载完成后只读，可被多个协程并发查询
type StyleTable struct {
	Format *FormatInfo // 表头格式定义
	rows   []Style     // 数据行，保留插入顺序
	byName map[string]int
}

func NewStyleTable() *StyleTable {
	return &StyleTable{
		rows:   make([]Style, 0),
		byName: make(map[string]int),
	}
}

// Append 添加样式到样式表
// 已存在同名样式时替换整条记录，不做原地修改
func (st *StyleTable) Append(style Style) {
	if style.Name == "" {
		style.Name = DefaultStyleName
	}
	if i, ok := st.byName[style.Name]; ok {
		st.rows[i] = style
		return
	}
	st.byName[style.Name] = len(st.rows)
	st.rows = append(st.rows, style)
}

// 根据样式名称获取样式（区分大小写的精确匹配）
// 未找到时返回 nil
func (st *StyleTable) Get(name string) *Style {
	if i, ok := st.byName[name]; ok {
		return &st.rows[i]
	}
	return nil
}

// 按插入顺序返回全部样式
func (st *StyleTable) Styles() []Style {
	return st.rows
}

func (st *StyleTable) Len() int {
	return len(st.rows)
}

// 合成一个兜底样式，用于没有脚本头或样式查不到的场合
// 主颜色不透明白、描边不透明黑、底色半透明黑（最高字节为透明度，0 表示不透明）
func DefaultStyle() Style {
	return Style{
		Name:           DefaultStyleName,
		FontName:       defaultFontName,
		FontSize:       defaultFontSize,
		PrimaryColor:   defaultPrimaryColor,
		SecondaryColor: defaultPrimaryColor,
		OutlineColor:   defaultOutlineColor,
		BackColor:      defaultBackColor,
		Bold:           defaultBoldWeight,
		ScaleX:         1.0,
		ScaleY:         1.0,
		BorderStyle:    defaultBorderStyle,
		Outline:        defaultOutline,
		Shadow:         defaultShadow,
		Alignment:      defaultAlignment,
	}
}
