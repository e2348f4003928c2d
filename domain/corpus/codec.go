package corpus

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Delimiter 分隔复选框 value 中的各字段
const Delimiter = "$"

const fieldCount = 3

var (
	ErrMalformedValue   = errors.New("value does not have exactly three fields")
	ErrDelimiterInField = errors.New("field contains the value delimiter")
	ErrEmptyField       = errors.New("field is empty")
)

// FieldError 指出校验失败的字段
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func joinFields(fields ...string) string {
	return strings.Join(fields, Delimiter)
}

func splitFields(value string) ([]string, error) {
	fields := strings.Split(value, Delimiter)
	if len(fields) != fieldCount {
		return nil, ErrMalformedValue
	}
	return fields, nil
}

func checkField(name, value string) error {
	if len(value) == 0 {
		return &FieldError{Field: name, Err: ErrEmptyField}
	}
	if strings.Contains(value, Delimiter) {
		return &FieldError{Field: name, Err: ErrDelimiterInField}
	}
	return nil
}

// NormalizeField 对用户输入做 NFC 规范化并去掉首尾空白。
func NormalizeField(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// Value 按声明顺序把字段用 $ 连接
func (e Entity) Value() string {
	return joinFields(e.Occurrence, e.Root, e.Type)
}

func (e Entity) Normalize() Entity {
	return Entity{
		Occurrence: NormalizeField(e.Occurrence),
		Root:       NormalizeField(e.Root),
		Type:       NormalizeField(e.Type),
	}
}

func (e Entity) Validate() error {
	if err := checkField("occurrence", e.Occurrence); err != nil {
		return err
	}
	if err := checkField("root", e.Root); err != nil {
		return err
	}
	return checkField("type", e.Type)
}

func ParseEntity(value string) (Entity, error) {
	fields, err := splitFields(value)
	if err != nil {
		return Entity{}, err
	}
	return Entity{Occurrence: fields[0], Root: fields[1], Type: fields[2]}, nil
}

func (r Relation) Value() string {
	return joinFields(r.Source, r.Label, r.Target)
}

func (r Relation) Normalize() Relation {
	return Relation{
		Source: NormalizeField(r.Source),
		Label:  NormalizeField(r.Label),
		Target: NormalizeField(r.Target),
	}
}

func (r Relation) Validate() error {
	if err := checkField("source", r.Source); err != nil {
		return err
	}
	if err := checkField("label", r.Label); err != nil {
		return err
	}
	return checkField("target", r.Target)
}

func ParseRelation(value string) (Relation, error) {
	fields, err := splitFields(value)
	if err != nil {
		return Relation{}, err
	}
	return Relation{Source: fields[0], Label: fields[1], Target: fields[2]}, nil
}
