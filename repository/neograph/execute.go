package neograph

import (
	"errors"

	"corpus-annotator-backend/utils"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"
)

var ErrNotConfigured = errors.New("neo4j is not configured")

// Execute 在写事务中执行 cypher，返回全部结果记录。
func Execute(cypher string, params map[string]interface{}) ([]*neo4j.Record, error) {
	if driver == nil {
		return nil, ErrNotConfigured
	}

	session := driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	records, err := session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		result, err := tx.Run(cypher, params)
		if err != nil {
			return nil, err
		}
		return result.Collect()
	})
	if err != nil {
		return nil, utils.WrapError(err, "execute cypher fail")
	}

	return records.([]*neo4j.Record), nil
}
