package ass

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Windows 字符集编号到解码器的映射
// 编号语义来自样式表的 Encoding 字段和 \fe 标签
var charsetEncodings = map[int]encoding.Encoding{
	0:   charmap.Windows1252, // ANSI
	1:   charmap.Windows1252, // DEFAULT
	128: japanese.ShiftJIS,
	129: korean.EUCKR,
	134: simplifiedchinese.GBK,
	136: traditionalchinese.Big5,
	161: charmap.Windows1253, // 希腊语
	162: charmap.Windows1254, // 土耳其语
	163: charmap.Windows1258, // 越南语
	177: charmap.Windows1255, // 希伯来语
	178: charmap.Windows1256, // 阿拉伯语
	186: charmap.Windows1257, // 波罗的语
	204: charmap.Windows1251, // 西里尔语
	222: charmap.Windows874,  // 泰语
	238: charmap.Windows1250, // 中欧
}

// CharsetEncoding 根据 Windows 字符集编号返回解码器
func CharsetEncoding(charset int) (encoding.Encoding, error) {
	enc, ok := charsetEncodings[charset]
	if !ok {
		return nil, NewErrUnsupportedCharset(charset)
	}
	return enc, nil
}

// DecodeScript 把任意编码的脚本字节解码成 UTF-8 文本
// BOM 优先于 charset 参数；没有 BOM 且 charset 无法识别时按 UTF-8 原样返回
func DecodeScript(data []byte, charset int) (string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:]), nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}), bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), dec))
		if err != nil {
			return "", fmt.Errorf("decode utf-16 script error: %w", err)
		}
		return string(out), nil
	}

	enc, err := CharsetEncoding(charset)
	if err != nil {
		return string(data), err
	}
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode script error (charset %d): %w", charset, err)
	}
	return string(out), nil
}
