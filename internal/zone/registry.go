package zone

import (
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
)

// 文档注释：配送区域注册表（只读快照）
// 背景：进程启动时一次性构造，之后仅供查询共享；不提供任何修改接口，需要重载时构造新表并通过 Table 原子替换。
// 约束：枚举顺序即插入顺序，也是重叠区域命中时的唯一裁决顺序。
type Registry struct {
	zones []Zone
	byID  map[string]int
	fp    string
}

// NewRegistry 按给定顺序构造注册表，校验 id 唯一、边界与费用合法
func NewRegistry(zones ...Zone) (*Registry, error) {
	r := &Registry{
		zones: make([]Zone, 0, len(zones)),
		byID:  make(map[string]int, len(zones)),
	}
	for _, z := range zones {
		if z.ID == "" {
			return nil, ErrEmptyID
		}
		if _, ok := r.byID[z.ID]; ok {
			return nil, fmt.Errorf("zone %q: %w", z.ID, ErrDuplicateID)
		}
		if !z.Bounds.valid() {
			return nil, fmt.Errorf("zone %q: %w", z.ID, ErrInvalidBounds)
		}
		if math.IsNaN(z.DeliveryFee) || z.DeliveryFee < 0 {
			return nil, fmt.Errorf("zone %q: %w", z.ID, ErrInvalidFee)
		}
		r.byID[z.ID] = len(r.zones)
		r.zones = append(r.zones, z)
	}
	r.fp = fingerprint(r.zones)
	return r, nil
}

// MustRegistry 用于静态表，构造失败直接 panic
func MustRegistry(zones ...Zone) *Registry {
	r, err := NewRegistry(zones...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get 返回 id 对应的区域；未知 id 返回 false
func (r *Registry) Get(id string) (Zone, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Zone{}, false
	}
	return r.zones[i], true
}

// All 按插入顺序返回全部区域，每次返回新切片
func (r *Registry) All() []Entry {
	out := make([]Entry, len(r.zones))
	for i, z := range r.zones {
		out[i] = Entry{ID: z.ID, Zone: z}
	}
	return out
}

func (r *Registry) IDs() []string {
	out := make([]string, len(r.zones))
	for i, z := range r.zones {
		out[i] = z.ID
	}
	return out
}

func (r *Registry) Len() int { return len(r.zones) }

// Fingerprint：区域表内容摘要（FNV64a），内容与顺序相同的表摘要相同，用作外部缓存键前缀
func (r *Registry) Fingerprint() string { return r.fp }

func fingerprint(zones []Zone) string {
	h := fnv.New64a()
	ff := func(f float64) { h.Write([]byte(strconv.FormatFloat(f, 'g', -1, 64) + "\x00")) }
	for _, z := range zones {
		for _, s := range []string{z.ID, z.Name, z.Color, z.EstimatedTime} {
			h.Write([]byte(s))
			h.Write([]byte{0})
		}
		ff(z.Bounds.South)
		ff(z.Bounds.West)
		ff(z.Bounds.North)
		ff(z.Bounds.East)
		ff(z.DeliveryFee)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
