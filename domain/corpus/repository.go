package corpus

import (
	"context"
	"corpus-annotator-backend/repository/metadata"
	"corpus-annotator-backend/utils"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrLineNotFound = errors.New("line not found")
	ErrEmptyLineID  = errors.New("line_id is empty")
)

////////////// metadata <-> domain ///////////////

func wordsFromSchema(analysis metadata.SchemaAnalysis) []Word {
	ret := make([]Word, 0, len(analysis))
	for _, w := range analysis {
		word := Word{
			Original: w.Original,
			Root:     w.Root,
			IsNoun:   w.IsNoun,
		}
		if w.Details != nil {
			word.Details = &WordDetails{Gender: w.Details.Gender, Case: w.Details.Case, Form: w.Details.Form}
		}
		ret = append(ret, word)
	}
	return ret
}

func wordsToSchema(words []Word) metadata.SchemaAnalysis {
	ret := make(metadata.SchemaAnalysis, 0, len(words))
	for _, w := range words {
		word := metadata.SchemaWord{
			Original: w.Original,
			Root:     w.Root,
			IsNoun:   w.IsNoun,
		}
		if w.Details != nil {
			word.Details = &metadata.SchemaWordDetails{Gender: w.Details.Gender, Case: w.Details.Case, Form: w.Details.Form}
		}
		ret = append(ret, word)
	}
	return ret
}

func lineFromModel(setting *Setting, model *metadata.Line) Line {
	analysis, err := metadata.ParseAnalysis(model.AnalysisJSON)
	if err != nil {
		// 分析结果损坏时按无分析处理，不影响已确认标注的展示
		setting.Logger.WithError(err).Warnf("analysis of line [%s] is malformed", model.LineID)
		analysis = nil
	}

	line := Line{
		LineID:   model.LineID,
		Analysis: wordsFromSchema(analysis),
		Entity:   make([]Entity, 0, len(model.Entities)),
		Relation: make([]Relation, 0, len(model.Relations)),
	}

	for _, e := range model.Entities {
		line.Entity = append(line.Entity, Entity{Occurrence: e.Occurrence, Root: e.Root, Type: e.Type})
	}
	for _, r := range model.Relations {
		line.Relation = append(line.Relation, Relation{Source: r.Source, Label: r.Label, Target: r.Target})
	}

	return line
}

func preloadOrdered(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Entities", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal") }).
		Preload("Relations", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal") })
}

////////////// 读取 ///////////////

func loadAll(setting *Setting, ctx context.Context) ([]Line, error) {
	var models []metadata.Line
	err := preloadOrdered(setting.GetMetadataDatabase().WithContext(ctx)).
		Order("position").Order("id").
		Find(&models).Error
	if err != nil {
		return nil, utils.WrapError(err, "select lines fail")
	}

	ret := make([]Line, 0, len(models))
	for i := range models {
		ret = append(ret, lineFromModel(setting, &models[i]))
	}

	return ret, nil
}

func find(setting *Setting, ctx context.Context, lineID string) (*Line, error) {
	var model metadata.Line
	err := preloadOrdered(setting.GetMetadataDatabase().WithContext(ctx)).
		Where(&metadata.Line{LineID: lineID}).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.WrapErrorf(ErrLineNotFound, "line_id=%#v", lineID)
	}
	if err != nil {
		return nil, utils.WrapErrorf(err, "select line [%s] fail", lineID)
	}

	line := lineFromModel(setting, &model)
	return &line, nil
}

////////////// 写入 ///////////////

/*
upsert 保存外部分析器产生的句子。已存在的句子只更新分析结果和顺序，已确认的标注不变；
lines 中带有的实体与关系只在句子第一次入库时写入，写入前按用户输入的规则校验，任一非法则整批回滚。
*/
func upsert(setting *Setting, ctx context.Context, lines []Line) error {
	return setting.GetMetadataDatabase().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPosition int
		if err := tx.Model(&metadata.Line{}).Select("COALESCE(MAX(position), 0)").Scan(&maxPosition).Error; err != nil {
			return utils.WrapError(err, "select max position fail")
		}

		for i, line := range lines {
			if len(line.LineID) == 0 {
				return utils.WrapErrorf(ErrEmptyLineID, "line at [%d]", i)
			}

			normalized, err := normalizeAnnotations(line)
			if err != nil {
				return utils.WrapErrorf(err, "line [%s]", line.LineID)
			}
			line = normalized

			var model metadata.Line
			err = tx.Where(&metadata.Line{LineID: line.LineID}).Take(&model).Error

			if err == nil {
				model.AnalysisJSON = wordsToSchema(line.Analysis).ToJSON()
				if err := tx.Save(&model).Error; err != nil {
					return utils.WrapErrorf(err, "update line [%s] fail", line.LineID)
				}
				continue
			}

			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.WrapErrorf(err, "select line [%s] fail", line.LineID)
			}

			maxPosition++
			model = metadata.Line{
				LineID:       line.LineID,
				Position:     maxPosition,
				AnalysisJSON: wordsToSchema(line.Analysis).ToJSON(),
				Entities:     entityModels(line.Entity, ""),
				Relations:    relationModels(line.Relation, ""),
			}
			if err := tx.Create(&model).Error; err != nil {
				return utils.WrapErrorf(err, "insert line [%s] fail", line.LineID)
			}
		}

		setting.Logger.Infof("upsert %d lines", len(lines))
		return nil
	})
}

// normalizeAnnotations 规范化并校验导入句子中自带的标注，与用户输入使用同样的规则。
func normalizeAnnotations(line Line) (Line, error) {
	entities := make([]Entity, 0, len(line.Entity))
	for i, e := range line.Entity {
		e = e.Normalize()
		if err := e.Validate(); err != nil {
			return line, utils.WrapErrorf(err, "invalid entity at [%d]", i)
		}
		entities = append(entities, e)
	}

	relations := make([]Relation, 0, len(line.Relation))
	for i, r := range line.Relation {
		r = r.Normalize()
		if err := r.Validate(); err != nil {
			return line, utils.WrapErrorf(err, "invalid relation at [%d]", i)
		}
		relations = append(relations, r)
	}

	line.Entity = entities
	line.Relation = relations
	return line, nil
}

func entityModels(entities []Entity, user string) []metadata.Entity {
	ret := make([]metadata.Entity, 0, len(entities))
	for i, e := range entities {
		ret = append(ret, metadata.Entity{
			Occurrence:  e.Occurrence,
			Root:        e.Root,
			Type:        e.Type,
			Ordinal:     i,
			ConfirmedBy: user,
		})
	}
	return ret
}

func relationModels(relations []Relation, user string) []metadata.Relation {
	ret := make([]metadata.Relation, 0, len(relations))
	for i, r := range relations {
		ret = append(ret, metadata.Relation{
			Source:      r.Source,
			Label:       r.Label,
			Target:      r.Target,
			Ordinal:     i,
			ConfirmedBy: user,
		})
	}
	return ret
}

/*
commit 用 entities 和 relations 整体替换句子已确认的标注。
*/
func commit(setting *Setting, ctx context.Context, lineID, user string, entities []Entity, relations []Relation) error {
	return setting.GetMetadataDatabase().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model metadata.Line
		err := tx.Where(&metadata.Line{LineID: lineID}).Take(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.WrapErrorf(ErrLineNotFound, "line_id=%#v", lineID)
		}
		if err != nil {
			return utils.WrapErrorf(err, "select line [%s] fail", lineID)
		}

		if err := tx.Unscoped().Where("line_id = ?", model.ID).Delete(&metadata.Entity{}).Error; err != nil {
			return utils.WrapError(err, "delete confirmed entities fail")
		}
		if err := tx.Unscoped().Where("line_id = ?", model.ID).Delete(&metadata.Relation{}).Error; err != nil {
			return utils.WrapError(err, "delete confirmed relations fail")
		}

		newEntities := entityModels(entities, user)
		for i := range newEntities {
			newEntities[i].LineID = model.ID
		}
		if len(newEntities) != 0 {
			if err := tx.Create(&newEntities).Error; err != nil {
				return utils.WrapError(err, "insert entities fail")
			}
		}

		newRelations := relationModels(relations, user)
		for i := range newRelations {
			newRelations[i].LineID = model.ID
		}
		if len(newRelations) != 0 {
			if err := tx.Create(&newRelations).Error; err != nil {
				return utils.WrapError(err, "insert relations fail")
			}
		}

		setting.Logger.Infof("line [%s] committed by [%s]: %d entities, %d relations",
			lineID, user, len(newEntities), len(newRelations))
		return nil
	})
}
