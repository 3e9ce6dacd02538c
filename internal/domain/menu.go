package domain

// MenuNode is one entry of a robot's menu tree
type MenuNode struct {
	ID           int64
	RobotID      int64
	ParentID     *int64
	OrderCode    string
	Title        string
	IsAttendment bool
	DepartmentID *int64
}

// IsAttendance reports whether selecting the node hands the user off to a department
func (m MenuNode) IsAttendance() bool {
	return m.IsAttendment && m.DepartmentID != nil
}
