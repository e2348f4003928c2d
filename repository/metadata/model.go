package metadata

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

/*
Extra 用于扩展信息，或者保存多态的信息，通过JSON格式。不直接单独作为一个数据库对象，类似gorm.Model。

	ExtraType 标记JSON的schema；
	ExtraJSON 额外信息的JSON主体；
*/
type Extra struct {
	ExtraType sql.NullString `gorm:"type:varchar(16)"`
	ExtraJSON sql.NullString `gorm:"type:text"`
}

//////////////////////////////// 语料，由外部分析器产生 ////////////////////////////////////

/*
Line 记录了语料中的一句话。

	LineID 语料中唯一的句子标识；
	Position 句子在语料中的顺序；
	AnalysisJSON 逐词分析结果，schema 见 SchemaAnalysis；

	Entities 多对一关系，已确认的实体；
	Relations 多对一关系，已确认的关系；
*/
type Line struct {
	gorm.Model
	Extra
	LineID       string `gorm:"type:varchar(64) not null;uniqueIndex:idx_lines_line_id"`
	Position     int    `gorm:"index:idx_lines_position"`
	AnalysisJSON string `gorm:"type:text"`

	Entities  []Entity   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Relations []Relation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

/*
Entity 记录了一个已确认的实体标注。

	Occurrence 词在句中的形式；
	Root 词根；
	Type 实体类型；
	Ordinal 在句子实体列表中的顺序；
	ConfirmedBy 确认该标注的用户；
*/
type Entity struct {
	gorm.Model
	Occurrence  string `gorm:"type:varchar(128) not null"`
	Root        string `gorm:"type:varchar(128) not null;index:idx_entities_root"`
	Type        string `gorm:"type:varchar(32) not null"`
	Ordinal     int
	ConfirmedBy string `gorm:"type:varchar(64)"`

	LineID uint
}

/*
Relation 记录了一条已确认的关系标注，Source 和 Target 一般为实体的词根。
*/
type Relation struct {
	gorm.Model
	Source      string `gorm:"type:varchar(128) not null"`
	Label       string `gorm:"type:varchar(64) not null;index:idx_relations_label"`
	Target      string `gorm:"type:varchar(128) not null"`
	Ordinal     int
	ConfirmedBy string `gorm:"type:varchar(64)"`

	LineID uint
}

///////////////////////////// 暂存区，未确认的标注 /////////////////////////////////////////

/*
StagingEntry 是扁平的键值存储，保存未确认的标注。Value 为 JSON 数组。
*/
type StagingEntry struct {
	Key       string `gorm:"type:varchar(191);primaryKey"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
