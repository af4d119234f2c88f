package models

// Namespace selects which attendance track a session belongs to. The two
// tracks share mechanics but are stored and reported independently.
type Namespace string

const (
	NamespaceRegular Namespace = "regular"
	NamespaceSAS     Namespace = "sas"
)

// Namespaces lists every attendance track, in scan order.
var Namespaces = []Namespace{NamespaceRegular, NamespaceSAS}

// Valid reports whether n is one of the known namespaces.
func (n Namespace) Valid() bool {
	return n == NamespaceRegular || n == NamespaceSAS
}

// Session represents one recorded work interval for a member on a given
// local calendar day. EndTime is nil while the session is still open.
type Session struct {
	ID uint `gorm:"primarykey" json:"id"`

	MemberID  int64     `gorm:"not null;index:idx_member_day,priority:1" json:"member_id"`
	Date      string    `gorm:"not null;index:idx_member_day,priority:2" json:"date"` // YYYY-MM-DD
	StartTime string    `gorm:"not null" json:"start_time"`                           // HH:MM:SS
	EndTime   *string   `json:"end_time"`                                             // HH:MM:SS, nil = open
	Namespace Namespace `gorm:"not null;default:regular;index:idx_member_day,priority:3" json:"namespace"`
}

// Open reports whether the session has not been closed yet.
func (s *Session) Open() bool {
	return s.EndTime == nil
}
