package field

// Role names a domain concept that must be located among arbitrary,
// non-standardized column headers.
type Role string

const (
	RoleReportTime    Role = "report_time"
	RoleDeadline      Role = "disposal_deadline"
	RoleCloseTime     Role = "close_time"
	RoleSubcategory   Role = "subcategory"
	RoleMajorCategory Role = "major_category"
	RoleProblemType   Role = "problem_type"
	RoleStreet        Role = "street"
	RoleCommunity     Role = "community"
	RoleDistrict      Role = "district"
	RoleRoad          Role = "road"
	RoleAddress       Role = "address"
	RoleProblemDesc   Role = "problem_desc"
	RoleSource        Role = "source"
	RoleDepartment    Role = "department"
	RoleDelayCount    Role = "delay_count"
	RoleReworkFlag    Role = "rework_flag"
	RoleStage         Role = "stage"
)

// Rule matches a column name when every clause matches; a clause matches
// when any of its substrings is contained in the (ASCII-folded) name.
// CJK substrings are compared byte-exact; no normalization is applied, so
// whitespace/punctuation variants in headers do not match. Inherited
// behavior, kept on purpose.
type Rule [][]string

// RoleSpec is one row of the resolution table: ordered primary rules, plus
// an optional fallback tier tried in a second scan when no primary rule
// bound the role.
type RoleSpec struct {
	Role     Role
	Primary  []Rule
	Fallback []Rule
}

// DefaultSpecs is the resolution table for municipal case exports. Order is
// priority: earlier specs claim a column before later ones within one scan
// position. Keeping the table as data makes the precedence testable and
// editable without touching the scan.
var DefaultSpecs = []RoleSpec{
	{
		Role:     RoleReportTime,
		Primary:  []Rule{{{"上报"}}},
		Fallback: []Rule{{{"时间"}}},
	},
	{
		Role:    RoleDeadline,
		Primary: []Rule{{{"捆绑"}, {"截止"}, {"时间"}}, {{"截止"}, {"时间"}}},
	},
	{
		Role:    RoleCloseTime,
		Primary: []Rule{{{"办结"}, {"时间"}}, {{"结案"}, {"时间"}}, {{"完成"}, {"时间"}}},
	},
	{
		Role:    RoleProblemType,
		Primary: []Rule{{{"问题"}, {"类型"}}},
	},
	{
		Role:    RoleMajorCategory,
		Primary: []Rule{{{"大类"}}},
	},
	{
		Role:    RoleSubcategory,
		Primary: []Rule{{{"小类"}}, {{"类型", "type"}}},
	},
	{
		Role:    RoleProblemDesc,
		Primary: []Rule{{{"问题"}, {"描述"}}},
		// Any problem-ish column will do when no description column exists.
		Fallback: []Rule{{{"问题"}}},
	},
	{
		Role:     RoleAddress,
		Primary:  []Rule{{{"地址"}, {"描述"}}, {{"地址", "位置"}}},
		Fallback: []Rule{{{"地址"}}},
	},
	{
		Role:    RoleStreet,
		Primary: []Rule{{{"街道"}}},
	},
	{
		Role:    RoleCommunity,
		Primary: []Rule{{{"社区"}}},
	},
	{
		Role:    RoleDistrict,
		Primary: []Rule{{{"片区", "区域"}}},
	},
	{
		Role:    RoleRoad,
		Primary: []Rule{{{"道路", "路名", "街"}}},
	},
	{
		Role:    RoleSource,
		Primary: []Rule{{{"来源", "渠道", "source"}}},
	},
	{
		Role:     RoleDepartment,
		Primary:  []Rule{{{"处置部门"}}},
		Fallback: []Rule{{{"部门"}}},
	},
	{
		Role:    RoleDelayCount,
		Primary: []Rule{{{"延期"}}},
	},
	{
		Role:    RoleReworkFlag,
		Primary: []Rule{{{"返工"}}},
	},
	{
		Role:    RoleStage,
		Primary: []Rule{{{"阶段", "环节"}}},
	},
}

// Spec returns the default spec for a single role.
func Spec(role Role) (RoleSpec, bool) {
	for _, spec := range DefaultSpecs {
		if spec.Role == role {
			return spec, true
		}
	}
	return RoleSpec{}, false
}

// Specs selects a subset of the default table, preserving table order.
func Specs(roles ...Role) []RoleSpec {
	wanted := make(map[Role]bool, len(roles))
	for _, r := range roles {
		wanted[r] = true
	}
	var out []RoleSpec
	for _, spec := range DefaultSpecs {
		if wanted[spec.Role] {
			out = append(out, spec)
		}
	}
	return out
}
