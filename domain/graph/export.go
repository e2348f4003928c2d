package graph

import (
	"corpus-annotator-backend/domain/corpus"
	"corpus-annotator-backend/utils"
)

// 先删除该句之前导出的边，再按确认结果重建
const deleteLineCypher = `
	match ()-[r:Relation{line_id:$line_id}]->()
	delete r
`

const deleteFormsCypher = `
	match ()-[f:FormOf{line_id:$line_id}]->()
	delete f
`

// 词根可能先由关系创建，类型总以最近一次确认为准
const entityCypher = `
	unwind $entities as ent
	merge (e:Root{name:ent.root})
	set e.type = ent.type
	merge (o:Occurrence{name:ent.occurrence})
	merge (o)-[:FormOf{line_id:$line_id}]->(e)
`

const relationCypher = `
	unwind $relations as rel
	merge (h:Root{name:rel.source})
	merge (t:Root{name:rel.target})
	merge (h)-[r:Relation{line_id:$line_id, name:rel.label}]->(t)
`

/*
exportConfirmed 把一句话确认后的标注同步到 Neo4j：词根为 Root 节点，关系为 Relation 边。
未配置 Neo4j 时什么也不做。
*/
func exportConfirmed(setting *KGSetting, lineID string, entities []corpus.Entity, relations []corpus.Relation) error {
	if !setting.Enabled() {
		return nil
	}

	if err := setting.Execute(deleteLineCypher, map[string]interface{}{"line_id": lineID}); err != nil {
		return utils.WrapErrorf(err, "delete relations of line [%s] fail", lineID)
	}

	if err := setting.Execute(deleteFormsCypher, map[string]interface{}{"line_id": lineID}); err != nil {
		return utils.WrapErrorf(err, "delete entity forms of line [%s] fail", lineID)
	}

	if len(entities) != 0 {
		params := make([]map[string]interface{}, 0, len(entities))
		for _, e := range entities {
			params = append(params, map[string]interface{}{
				"occurrence": e.Occurrence,
				"root":       e.Root,
				"type":       e.Type,
			})
		}

		err := setting.Execute(entityCypher, map[string]interface{}{
			"line_id":  lineID,
			"entities": params,
		})
		if err != nil {
			return utils.WrapErrorf(err, "merge entities of line [%s] fail", lineID)
		}
	}

	if len(relations) != 0 {
		params := make([]map[string]interface{}, 0, len(relations))
		for _, r := range relations {
			params = append(params, map[string]interface{}{
				"source": r.Source,
				"label":  r.Label,
				"target": r.Target,
			})
		}

		err := setting.Execute(relationCypher, map[string]interface{}{
			"line_id":   lineID,
			"relations": params,
		})
		if err != nil {
			return utils.WrapErrorf(err, "merge relations of line [%s] fail", lineID)
		}
	}

	setting.Logger.Infof("line [%s] exported to graph", lineID)
	return nil
}
