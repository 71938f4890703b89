package models

// PolicyType distinguishes plan tiers.
type PolicyType string

const (
	PolicyTypePersonal  PolicyType = "personal"
	PolicyTypeTeam      PolicyType = "team"
	PolicyTypeCorporate PolicyType = "corporate"
)

// ApprovalMode selects the approval workflow shape.
type ApprovalMode string

const (
	// ApprovalModeOptional is "submit and close": no approver at all.
	ApprovalModeOptional ApprovalMode = "OPTIONAL"
	// ApprovalModeBasic routes every report to a single approver.
	ApprovalModeBasic ApprovalMode = "BASIC"
	// ApprovalModeAdvanced walks the per-employee forwarding chain.
	ApprovalModeAdvanced ApprovalMode = "ADVANCED"
)

// ReimbursementChoice selects how approved spend is paid out.
type ReimbursementChoice string

const (
	ReimburseYes    ReimbursementChoice = "reimburseYes"
	ReimburseNo     ReimbursementChoice = "reimburseNo"
	ReimburseManual ReimbursementChoice = "reimburseManual"
)

// AutoReportingFrequency controls harvesting cadence.
type AutoReportingFrequency string

const (
	FrequencyInstant   AutoReportingFrequency = "instant"
	FrequencyImmediate AutoReportingFrequency = "immediate"
	FrequencyWeekly    AutoReportingFrequency = "weekly"
	FrequencyMonthly   AutoReportingFrequency = "monthly"
	FrequencyManual    AutoReportingFrequency = "manual"
)

// PolicyEmployee is one row of the workspace member list.
type PolicyEmployee struct {
	Email               string `json:"email"`
	Role                string `json:"role,omitempty"`
	SubmitsTo           string `json:"submitsTo,omitempty"`
	ForwardsTo          string `json:"forwardsTo,omitempty"`
	OverLimitForwardsTo string `json:"overLimitForwardsTo,omitempty"`
	ApprovalLimit       int64  `json:"approvalLimit,omitempty"`
}

// ApprovalRuleField selects which transaction field a rule matches.
type ApprovalRuleField string

const (
	RuleFieldCategory ApprovalRuleField = "category"
	RuleFieldTag      ApprovalRuleField = "tag"
)

// ApprovalRule routes transactions with a matching field value through an
// extra approver before the manager chain.
type ApprovalRule struct {
	Field         ApprovalRuleField `json:"field"`
	Value         string            `json:"value"`
	ApproverEmail string            `json:"approverEmail"`
}

// Policy is the workspace configuration governing approvals and payouts.
type Policy struct {
	ID                  string                    `db:"policy_id" json:"id"`
	Name                string                    `db:"name" json:"name"`
	Type                PolicyType                `db:"type" json:"type"`
	Owner               string                    `db:"owner" json:"owner,omitempty"`
	OwnerAccountID      int64                     `db:"owner_account_id" json:"ownerAccountID,omitempty"`
	ApprovalMode        ApprovalMode              `db:"approval_mode" json:"approvalMode,omitempty"`
	Approver            string                    `db:"approver" json:"approver,omitempty"`
	PreventSelfApproval bool                      `db:"prevent_self_approval" json:"preventSelfApproval,omitempty"`
	HarvestingEnabled   bool                      `db:"harvesting_enabled" json:"harvestingEnabled,omitempty"`
	AutoReporting       AutoReportingFrequency    `db:"auto_reporting_frequency" json:"autoReportingFrequency,omitempty"`
	ASAPSubmit          bool                      `db:"asap_submit" json:"asapSubmit,omitempty"`
	ReimbursementChoice ReimbursementChoice       `db:"reimbursement_choice" json:"reimbursementChoice,omitempty"`
	Employees           map[string]PolicyEmployee `db:"-" json:"employeeList,omitempty"`
	ApprovalRules       []ApprovalRule            `db:"-" json:"approvalRules,omitempty"`
}

// Employee looks up the member row for a login.
func (p *Policy) Employee(email string) (PolicyEmployee, bool) {
	if p == nil || email == "" {
		return PolicyEmployee{}, false
	}
	e, ok := p.Employees[email]
	return e, ok
}

// IsSubmitAndClose reports whether reports skip approval entirely.
func (p *Policy) IsSubmitAndClose() bool {
	return p != nil && p.ApprovalMode == ApprovalModeOptional
}

// IsInstantSubmit reports whether harvesting submits reports immediately.
func (p *Policy) IsInstantSubmit() bool {
	return p != nil && p.HarvestingEnabled && p.AutoReporting == FrequencyInstant
}

// PaymentsDisabled reports whether reimbursement is switched off.
func (p *Policy) PaymentsDisabled() bool {
	return p != nil && p.ReimbursementChoice == ReimburseNo
}
