package workbench

import (
	"corpus-annotator-backend/domain/render"
	"corpus-annotator-backend/domain/staging"
	"corpus-annotator-backend/repository/kvstore"
	"sync"

	"github.com/sirupsen/logrus"
)

type Setting struct {
	Logger     *logrus.Logger
	GetKVStore func() kvstore.Store
}

// registry 为每个标注人保存一个 Workbench，暂存区按标注人隔离。
type registry struct {
	setting  Setting
	renderer *render.Renderer

	lock    sync.Mutex
	benches map[string]*Workbench
}

func newRegistry(setting *Setting) *registry {
	return &registry{
		setting:  *setting,
		renderer: render.MustNew(),
		benches:  make(map[string]*Workbench),
	}
}

func (r *registry) forUser(user string) *Workbench {
	r.lock.Lock()
	defer r.lock.Unlock()

	w, ok := r.benches[user]
	if !ok {
		store := staging.New(kvstore.Namespace(r.setting.GetKVStore(), user), r.setting.Logger)
		w = New(store, r.renderer, r.setting.Logger)
		r.benches[user] = w
	}

	return w
}

var globalRegistry *registry

func Init(setting *Setting) {
	globalRegistry = newRegistry(setting)
}

func ForUser(user string) *Workbench {
	return globalRegistry.forUser(user)
}
