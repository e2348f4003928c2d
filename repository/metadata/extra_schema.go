package metadata

import "encoding/json"

func toJSON(schema interface{}) string {
	bytes, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

type SchemaWordDetails struct {
	Gender string `json:"gender"`
	Case   string `json:"case"`
	Form   string `json:"form"`
}

type SchemaWord struct {
	Original string             `json:"original"`
	Root     string             `json:"root"`
	IsNoun   bool               `json:"is_noun"`
	Details  *SchemaWordDetails `json:"details,omitempty"`
}

// SchemaAnalysis 是 Line.AnalysisJSON 的结构
type SchemaAnalysis []SchemaWord

func (a SchemaAnalysis) ToJSON() string {
	if a == nil {
		a = SchemaAnalysis{}
	}
	return toJSON(a)
}

func ParseAnalysis(raw string) (SchemaAnalysis, error) {
	if len(raw) == 0 {
		return SchemaAnalysis{}, nil
	}

	var ret SchemaAnalysis
	if err := json.Unmarshal([]byte(raw), &ret); err != nil {
		return nil, err
	}
	return ret, nil
}
