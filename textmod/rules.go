package textmod

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownMode       = errors.New("textmod: unknown rule mode")
	ErrUnknownCensorMode = errors.New("textmod: unknown censor mode")
)

// RuleFile 是 YAML 规则文件的结构
// 一个文件描述一种操作，词表可以直接写在文件里
type RuleFile struct {
	Mode         string   `yaml:"mode"`                    // leet/to_upper/to_lower/replace_chars/remove_chars/replace_words/remove_words/censor
	FindChars    string   `yaml:"find_chars,omitempty"`    // replace_chars/remove_chars 的字符集
	ReplaceChars string   `yaml:"replace_chars,omitempty"` // replace_chars 的替换字符集，与 find_chars 等长
	Words        []string `yaml:"words,omitempty"`         // replace_words/remove_words/censor 的词表
	Replacements []string `yaml:"replacements,omitempty"`  // replace_words 的替换词表，与 words 等数
	CensorChar   string   `yaml:"censor_char,omitempty"`   // 单个遮盖字符，默认 *
	CensorMode   string   `yaml:"censor_mode,omitempty"`   // all/keep_first/keep_first_last
}

// LoadRuleFile 从磁盘读取并解析规则文件
func LoadRuleFile(path string) (*RuleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file error: %w", err)
	}
	return ParseRules(data)
}

func ParseRules(data []byte) (*RuleFile, error) {
	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rule file error: %w", err)
	}
	return &rf, nil
}

// Build 根据规则构造操作，参数校验在这里统一发生
func (rf *RuleFile) Build() (*TextMod, error) {
	switch rf.Mode {
	case "leet":
		return NewLeet(), nil
	case "to_upper":
		return NewCaseMapper(true), nil
	case "to_lower":
		return NewCaseMapper(false), nil
	case "replace_chars":
		return NewReplaceChars(rf.FindChars, rf.ReplaceChars)
	case "remove_chars":
		return NewRemoveChars(rf.FindChars)
	case "replace_words":
		return NewReplaceWords(rf.Words, rf.Replacements)
	case "remove_words":
		return NewRemoveWords(rf.Words)
	case "censor":
		censorChar := byte('*')
		if rf.CensorChar != "" {
			if len(rf.CensorChar) != 1 {
				return nil, ErrBadCensorChar
			}
			censorChar = rf.CensorChar[0]
		}
		mode := CensorAll
		switch rf.CensorMode {
		case "", "all":
		case "keep_first":
			mode = CensorKeepFirst
		case "keep_first_last":
			mode = CensorKeepFirstLast
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownCensorMode, rf.CensorMode)
		}
		return NewCensor(rf.Words, censorChar, mode)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, rf.Mode)
}
