package constants

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Role error message templates
const (
	ErrOnlyStaffCanAccess   = "❌ 교역자만 %s 기능을 사용할 수 있습니다."
	ErrOnlyLeadersCanAccess = "❌ 셀장 이상만 %s 기능을 사용할 수 있습니다."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorLeader(feature string) string {
	return fmt.Sprintf(ErrOnlyLeadersCanAccess, feature)
}

// ==========================
// ✅ Role
// ==========================

// Role is ordered by code: a lower code carries more authority.
type Role int

const (
	RolePastor Role = iota + 1
	RoleAssociatePastor
	RoleJuniorPastor
	RoleFamilyLeader
	RoleSubFamilyLeader
	RoleLeader
	RoleMember
	RoleNewbie
)

type enumEntry struct {
	key  string
	name string
}

var roleTable = map[Role]enumEntry{
	RolePastor:          {"PASTOR", "담임목사"},
	RoleAssociatePastor: {"ASSOCIATE_PASTOR", "부목사"},
	RoleJuniorPastor:    {"JUNIOR_PASTOR", "전도사"},
	RoleFamilyLeader:    {"FAMILY_LEADER", "팸장"},
	RoleSubFamilyLeader: {"SUB_FAMILY_LEADER", "부팸장"},
	RoleLeader:          {"LEADER", "셀장"},
	RoleMember:          {"MEMBER", "셀원"},
	RoleNewbie:          {"NEWBIE", "새신자"},
}

// AllRoles in authority order.
var AllRoles = []Role{
	RolePastor, RoleAssociatePastor, RoleJuniorPastor, RoleFamilyLeader,
	RoleSubFamilyLeader, RoleLeader, RoleMember, RoleNewbie,
}

func (r Role) Code() int { return int(r) }

func (r Role) Valid() bool {
	_, ok := roleTable[r]
	return ok
}

// Key is the persisted identifier, e.g. "FAMILY_LEADER".
func (r Role) Key() string { return roleTable[r].key }

// Name is the display name, e.g. "팸장".
func (r Role) Name() string { return roleTable[r].name }

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return r.Key()
}

func (r Role) IsHigherThan(o Role) bool { return r < o }
func (r Role) IsLowerThan(o Role) bool  { return r > o }
func (r Role) IsAtLeast(o Role) bool    { return r <= o }

// IsStaff: pastoral staff, never demoted by leadership changes.
func (r Role) IsStaff() bool { return r.Valid() && r.IsAtLeast(RoleJuniorPastor) }

func (r Role) IsFamilyRole() bool {
	return r == RoleFamilyLeader || r == RoleSubFamilyLeader
}

// CanLeadCell: anyone above a newbie may be put in charge of a cell.
func (r Role) CanLeadCell() bool { return r.Valid() && r.IsHigherThan(RoleNewbie) }

// CanLeadFamily: newbies and plain members cannot head a family.
func (r Role) CanLeadFamily() bool { return r.Valid() && r.IsAtLeast(RoleLeader) }

// RoleByName accepts either the key ("LEADER") or the display name ("셀장").
func RoleByName(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for r, e := range roleTable {
		if strings.EqualFold(e.key, s) || e.name == s {
			return r, true
		}
	}
	return 0, false
}

func RoleByCode(code int) (Role, bool) {
	r := Role(code)
	return r, r.Valid()
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(r.Key())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("role: %w", err)
	}
	v, ok := RoleByName(s)
	if !ok {
		return fmt.Errorf("role: unknown value %q", s)
	}
	*r = v
	return nil
}

func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("role: invalid value %d", int(r))
	}
	return r.Key(), nil
}

func (r *Role) Scan(src any) error {
	s, err := scanString(src)
	if err != nil {
		return fmt.Errorf("role: %w", err)
	}
	v, ok := RoleByName(s)
	if !ok {
		return fmt.Errorf("role: unknown value %q", s)
	}
	*r = v
	return nil
}

// ==========================
// ✅ Rank (직분)
// ==========================

type Rank int

const (
	RankPastor Rank = iota + 1
	RankElder
	RankOrdainedDeacon
	RankKwonsa
	RankDeacon
	RankSaint
)

var rankTable = map[Rank]enumEntry{
	RankPastor:         {"PASTOR", "목사"},
	RankElder:          {"ELDER", "장로"},
	RankOrdainedDeacon: {"ORDAINED_DEACON", "안수집사"},
	RankKwonsa:         {"KWONSA", "권사"},
	RankDeacon:         {"DEACON", "집사"},
	RankSaint:          {"SAINT", "성도"},
}

func (r Rank) Code() int { return int(r) }

func (r Rank) Valid() bool {
	_, ok := rankTable[r]
	return ok
}

func (r Rank) Key() string              { return rankTable[r].key }
func (r Rank) Name() string             { return rankTable[r].name }
func (r Rank) IsHigherThan(o Rank) bool { return r < o }

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return r.Key()
}

func RankByName(s string) (Rank, bool) {
	s = strings.TrimSpace(s)
	for r, e := range rankTable {
		if strings.EqualFold(e.key, s) || e.name == s {
			return r, true
		}
	}
	return 0, false
}

func (r Rank) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(r.Key())
}

func (r *Rank) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	v, ok := RankByName(s)
	if !ok {
		return fmt.Errorf("rank: unknown value %q", s)
	}
	*r = v
	return nil
}

func (r Rank) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("rank: invalid value %d", int(r))
	}
	return r.Key(), nil
}

func (r *Rank) Scan(src any) error {
	s, err := scanString(src)
	if err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	v, ok := RankByName(s)
	if !ok {
		return fmt.Errorf("rank: unknown value %q", s)
	}
	*r = v
	return nil
}

// ==========================
// ✅ Gender
// ==========================

type Gender int

const (
	GenderMale Gender = iota + 1
	GenderFemale
)

var genderTable = map[Gender]enumEntry{
	GenderMale:   {"MALE", "남"},
	GenderFemale: {"FEMALE", "여"},
}

func (g Gender) Valid() bool {
	_, ok := genderTable[g]
	return ok
}

func (g Gender) Key() string  { return genderTable[g].key }
func (g Gender) Name() string { return genderTable[g].name }

func GenderByName(s string) (Gender, bool) {
	s = strings.TrimSpace(s)
	for g, e := range genderTable {
		if strings.EqualFold(e.key, s) || e.name == s {
			return g, true
		}
	}
	return 0, false
}

func (g Gender) MarshalJSON() ([]byte, error) {
	if !g.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(g.Key())
}

func (g *Gender) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("gender: %w", err)
	}
	v, ok := GenderByName(s)
	if !ok {
		return fmt.Errorf("gender: unknown value %q", s)
	}
	*g = v
	return nil
}

// Gender is nullable in the users table.
func (g Gender) Value() (driver.Value, error) {
	if !g.Valid() {
		return nil, nil
	}
	return g.Key(), nil
}

func (g *Gender) Scan(src any) error {
	if src == nil {
		*g = 0
		return nil
	}
	s, err := scanString(src)
	if err != nil {
		return fmt.Errorf("gender: %w", err)
	}
	v, ok := GenderByName(s)
	if !ok {
		return fmt.Errorf("gender: unknown value %q", s)
	}
	*g = v
	return nil
}

func scanString(src any) (string, error) {
	switch t := src.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	default:
		return "", fmt.Errorf("unsupported scan type %T", src)
	}
}
