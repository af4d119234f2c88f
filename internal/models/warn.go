package models

// WarnLimit is the maximum number of active warnings a member can carry
// before a privileged reset is required.
const WarnLimit = 3

// WarnCount tracks disciplinary warnings per member. Rows are created
// lazily and never deleted; a missing row reads as zero.
type WarnCount struct {
	MemberID int64 `gorm:"primarykey" json:"member_id"`
	Count    int   `gorm:"not null;default:0" json:"count"`
}
