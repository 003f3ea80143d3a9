package token

import "strings"

// Биты маски прав
const (
	BitRead   uint64 = 1
	BitWrite  uint64 = 2
	BitManage uint64 = 4
	BitDelete uint64 = 8
	BitCreate uint64 = 16
	BitGet    uint64 = 32
	BitUpdate uint64 = 64
	BitJoin   uint64 = 128
)

// Permissions разобранная маска прав одного ресурса
type Permissions struct {
	Read   bool
	Write  bool
	Manage bool
	Delete bool
	Create bool
	Get    bool
	Update bool
	Join   bool
}

// ParsePermissions разбирает битовую маску; неизвестные биты игнорируются
func ParsePermissions(mask uint64) Permissions {
	return Permissions{
		Read:   mask&BitRead != 0,
		Write:  mask&BitWrite != 0,
		Manage: mask&BitManage != 0,
		Delete: mask&BitDelete != 0,
		Create: mask&BitCreate != 0,
		Get:    mask&BitGet != 0,
		Update: mask&BitUpdate != 0,
		Join:   mask&BitJoin != 0,
	}
}

// Mask собирает битовую маску обратно
func (p Permissions) Mask() uint64 {
	var mask uint64
	for _, f := range p.flags() {
		if f.set {
			mask |= f.bit
		}
	}
	return mask
}

// String список выданных прав через запятую, например "read,write"
func (p Permissions) String() string {
	var names []string
	for _, f := range p.flags() {
		if f.set {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

type flag struct {
	name string
	bit  uint64
	set  bool
}

func (p Permissions) flags() []flag {
	return []flag{
		{"read", BitRead, p.Read},
		{"write", BitWrite, p.Write},
		{"manage", BitManage, p.Manage},
		{"delete", BitDelete, p.Delete},
		{"create", BitCreate, p.Create},
		{"get", BitGet, p.Get},
		{"update", BitUpdate, p.Update},
		{"join", BitJoin, p.Join},
	}
}
