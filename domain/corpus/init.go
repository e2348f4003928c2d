package corpus

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Setting struct {
	GetMetadataDatabase func() *gorm.DB
	Logger              *logrus.Logger
}

var globalSetting Setting

func Init(setting *Setting) {
	globalSetting = *setting
}

func LoadAll(ctx context.Context) ([]Line, error) {
	return loadAll(&globalSetting, ctx)
}

func Find(ctx context.Context, lineID string) (*Line, error) {
	return find(&globalSetting, ctx, lineID)
}

func Upsert(ctx context.Context, lines []Line) error {
	return upsert(&globalSetting, ctx, lines)
}

func Commit(ctx context.Context, lineID, user string, entities []Entity, relations []Relation) error {
	return commit(&globalSetting, ctx, lineID, user, entities, relations)
}
