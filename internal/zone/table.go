package zone

import "sync/atomic"

// 文档注释：进程级区域表持有者
// 背景：读路径通过 atomic.Pointer 无锁获取当前快照；重载时构造新的注册表与解析器后整体替换，不在原表上修改。
// 约束：Swap 传入 nil 视为空表。
type Table struct {
	v atomic.Pointer[Resolver]
}

func NewTable(reg *Registry) *Table {
	t := &Table{}
	t.Swap(reg)
	return t
}

func (t *Table) Swap(reg *Registry) {
	t.v.Store(NewResolver(reg))
}

func (t *Table) Resolver() *Resolver { return t.v.Load() }

func (t *Table) Load() *Registry { return t.v.Load().Registry() }
