package models

import "time"

type FarmRole string

const (
	RoleOwner    FarmRole = "owner"
	RoleAdmin    FarmRole = "admin"
	RoleOperator FarmRole = "operator"
	RoleViewer   FarmRole = "viewer"
)

// roleRank: makin besar makin tinggi wewenangnya
var roleRank = map[FarmRole]int{
	RoleViewer:   1,
	RoleOperator: 2,
	RoleAdmin:    3,
	RoleOwner:    4,
}

// Allows melaporkan apakah role ini memenuhi role minimal `min`.
func (role FarmRole) Allows(min FarmRole) bool {
	return roleRank[role] >= roleRank[min]
}

func (role FarmRole) Valid() bool {
	_, ok := roleRank[role]
	return ok
}

type Farm struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Address   string `gorm:"size:255"`
	Phone     string `gorm:"size:50"` // telepon opsional
	CreatedAt time.Time
	UpdatedAt time.Time

	Members []FarmMember
	Ponds   []Pond
}

// FarmMember: keanggotaan user pada satu tambak beserta rolenya.
type FarmMember struct {
	ID        uint `gorm:"primaryKey"`
	FarmID    uint `gorm:"index:idx_farm_user,unique;not null"`
	Farm      Farm
	UserID    uint `gorm:"index:idx_farm_user,unique;not null"`
	User      User
	Role      FarmRole `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
