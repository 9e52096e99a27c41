package ass

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeScript(t *testing.T) {
	t.Run("UTF8带BOM", func(t *testing.T) {
		got, err := DecodeScript([]byte{0xEF, 0xBB, 0xBF, 'a', 'b'}, 0)
		require.NoError(t, err)
		require.Equal(t, "ab", got)
	})

	t.Run("UTF16LE带BOM", func(t *testing.T) {
		got, err := DecodeScript([]byte{0xFF, 0xFE, 'a', 0x00, 'b', 0x00}, 0)
		require.NoError(t, err)
		require.Equal(t, "ab", got)
	})

	t.Run("GBK", func(t *testing.T) {
		// "中文" 的 GBK 字节
		got, err := DecodeScript([]byte{0xD6, 0xD0, 0xCE, 0xC4}, 134)
		require.NoError(t, err)
		require.Equal(t, "中文", got)
	})

	t.Run("ShiftJIS", func(t *testing.T) {
		// "テスト" 的 Shift-JIS 字节
		got, err := DecodeScript([]byte{0x83, 0x65, 0x83, 0x58, 0x83, 0x67}, 128)
		require.NoError(t, err)
		require.Equal(t, "テスト", got)
	})

	t.Run("Windows1252", func(t *testing.T) {
		got, err := DecodeScript([]byte{'c', 'a', 'f', 0xE9}, 0)
		require.NoError(t, err)
		require.Equal(t, "café", got)
	})

	t.Run("未知字符集", func(t *testing.T) {
		got, err := DecodeScript([]byte("plain"), 42)
		var uc *ErrUnsupportedCharset
		require.ErrorAs(t, err, &uc)
		require.Equal(t, "plain", got) // 原样返回，调用方可以选择忽略错误
	})
}

func TestCharsetEncoding(t *testing.T) {
	for _, id := range []int{0, 1, 128, 129, 134, 136, 204, 238} {
		enc, err := CharsetEncoding(id)
		require.NoError(t, err)
		require.NotNil(t, enc)
	}

	_, err := CharsetEncoding(999)
	require.Error(t, err)
}
