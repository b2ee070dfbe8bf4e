package rbac

import "go-jobmarket/internal/shared/contextutil"

const (
	ResourceAd          = "ad"
	ResourceEmployer    = "employer"
	ResourceCompany     = "company"
	ResourceMOU         = "mou"
	ResourceActivityLog = "activity_log"
	ResourceStats       = "stats"
)

const (
	ActionRead       = "read"
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionSubmit     = "submit"
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionArchive    = "archive"
	ActionBlock      = "block"
	ActionUnblock    = "unblock"
	ActionDeactivate = "deactivate"
	ActionUpload     = "upload"
	ActionExport     = "export"
)

// DefaultPolicies is the role -> permission table loaded into the enforcer.
// Ownership (an employer touching only its own rows) is checked by services.
var DefaultPolicies = [][]string{
	{contextutil.RoleBranchAdmin, ResourceAd, ActionRead},
	{contextutil.RoleBranchAdmin, ResourceAd, ActionApprove},
	{contextutil.RoleBranchAdmin, ResourceAd, ActionReject},
	{contextutil.RoleBranchAdmin, ResourceAd, ActionArchive},
	{contextutil.RoleBranchAdmin, ResourceEmployer, ActionCreate},
	{contextutil.RoleBranchAdmin, ResourceEmployer, ActionRead},
	{contextutil.RoleBranchAdmin, ResourceEmployer, ActionApprove},
	{contextutil.RoleBranchAdmin, ResourceEmployer, ActionReject},
	{contextutil.RoleBranchAdmin, ResourceEmployer, ActionBlock},
	{contextutil.RoleBranchAdmin, ResourceEmployer, ActionUnblock},
	{contextutil.RoleBranchAdmin, ResourceCompany, ActionRead},
	{contextutil.RoleBranchAdmin, ResourceMOU, ActionCreate},
	{contextutil.RoleBranchAdmin, ResourceMOU, ActionRead},
	{contextutil.RoleBranchAdmin, ResourceMOU, ActionDeactivate},
	{contextutil.RoleBranchAdmin, ResourceMOU, ActionUpload},
	{contextutil.RoleBranchAdmin, ResourceActivityLog, ActionRead},
	{contextutil.RoleBranchAdmin, ResourceActivityLog, ActionExport},
	{contextutil.RoleBranchAdmin, ResourceStats, ActionRead},

	{contextutil.RoleEmployer, ResourceAd, ActionCreate},
	{contextutil.RoleEmployer, ResourceAd, ActionRead},
	{contextutil.RoleEmployer, ResourceAd, ActionUpdate},
	{contextutil.RoleEmployer, ResourceAd, ActionSubmit},
	{contextutil.RoleEmployer, ResourceAd, ActionArchive},
	{contextutil.RoleEmployer, ResourceEmployer, ActionCreate},
	{contextutil.RoleEmployer, ResourceEmployer, ActionRead},
	{contextutil.RoleEmployer, ResourceCompany, ActionCreate},
	{contextutil.RoleEmployer, ResourceCompany, ActionRead},
	{contextutil.RoleEmployer, ResourceMOU, ActionRead},
}

var RoleAdminOnly = []string{contextutil.RoleBranchAdmin}
