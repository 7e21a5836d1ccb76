package model

// Profile is the questionnaire answer set describing one organization.
// Enumerated answers are lower-case option ids ("yes", "no", "mandatory",
// "quarterly", ...). A Profile is treated as read-only by every consumer.
type Profile struct {
	// Business
	Name     string `json:"name" yaml:"name"`
	Region   string `json:"region" yaml:"region"`
	Model    string `json:"model" yaml:"model"`
	Industry string `json:"industry" yaml:"industry"`
	Size     string `json:"size" yaml:"size"`

	// Organization
	Employees    int    `json:"employees" yaml:"employees"`
	Departments  int    `json:"departments" yaml:"departments"`
	Remote       string `json:"remote" yaml:"remote"`
	Vendors      string `json:"vendors" yaml:"vendors"`
	OutsourcedIT string `json:"outsourcedIT" yaml:"outsourcedIT"`

	// Technology
	Hosting       string `json:"hosting" yaml:"hosting"`
	CloudProvider string `json:"cloudProvider" yaml:"cloudProvider"`
	OS            string `json:"os" yaml:"os"`
	SaaS          string `json:"saas" yaml:"saas"`
	Network       string `json:"network" yaml:"network"`

	// Data
	DataTypes  []string `json:"dataTypes" yaml:"dataTypes"`
	DataVolume string   `json:"dataVolume" yaml:"dataVolume"`

	// Security basics
	MFA        string `json:"mfa" yaml:"mfa"`
	Password   string `json:"password" yaml:"password"`
	Logging    string `json:"logging" yaml:"logging"`
	AdminCount int    `json:"adminCount" yaml:"adminCount"`

	// Risk appetite
	RiskTolerance string `json:"riskTolerance" yaml:"riskTolerance"`
	AuditReady    string `json:"auditReady" yaml:"auditReady"`

	// Infrastructure
	ApplicationCount        int    `json:"applicationCount" yaml:"applicationCount"`
	PublicAPIs              string `json:"publicAPIs" yaml:"publicAPIs"`
	APIAuthentication       string `json:"apiAuthentication" yaml:"apiAuthentication"`
	MobileApps              string `json:"mobileApps" yaml:"mobileApps"`
	WebApplications         int    `json:"webApplications" yaml:"webApplications"`
	PrimaryDatabase         string `json:"primaryDatabase" yaml:"primaryDatabase"`
	DatabaseCount           int    `json:"databaseCount" yaml:"databaseCount"`
	DataEncryptionAtRest    string `json:"dataEncryptionAtRest" yaml:"dataEncryptionAtRest"`
	DataEncryptionInTransit string `json:"dataEncryptionInTransit" yaml:"dataEncryptionInTransit"`
	BackupFrequency         string `json:"backupFrequency" yaml:"backupFrequency"`
	BackupTesting           string `json:"backupTesting" yaml:"backupTesting"`
	NetworkSegmentation     string `json:"networkSegmentation" yaml:"networkSegmentation"`
	FirewallType            string `json:"firewallType" yaml:"firewallType"`
	IntrusionDetection      string `json:"intrusionDetection" yaml:"intrusionDetection"`
	VPNRequired             string `json:"vpnRequired" yaml:"vpnRequired"`

	// Security posture
	AntivirusDeployed          string  `json:"antivirusDeployed" yaml:"antivirusDeployed"`
	EDRSolution                string  `json:"edrSolution" yaml:"edrSolution"`
	SIEMDeployed               string  `json:"siemDeployed" yaml:"siemDeployed"`
	VulnerabilityScanning      string  `json:"vulnerabilityScanning" yaml:"vulnerabilityScanning"`
	PatchingFrequency          string  `json:"patchingFrequency" yaml:"patchingFrequency"`
	SSOImplemented             string  `json:"ssoImplemented" yaml:"ssoImplemented"`
	PrivilegedAccessManagement string  `json:"privilegedAccessManagement" yaml:"privilegedAccessManagement"`
	SessionTimeouts            int     `json:"sessionTimeouts" yaml:"sessionTimeouts"`
	AccountReviewFrequency     string  `json:"accountReviewFrequency" yaml:"accountReviewFrequency"`
	SecurityTeamSize           int     `json:"securityTeamSize" yaml:"securityTeamSize"`
	SecurityBudget             float64 `json:"securityBudget" yaml:"securityBudget"`
	CISOPresent                string  `json:"cisoPresent" yaml:"cisoPresent"`
	SecurityTrainingFrequency  string  `json:"securityTrainingFrequency" yaml:"securityTrainingFrequency"`
	PhishingSimulations        string  `json:"phishingSimulations" yaml:"phishingSimulations"`
	IncidentResponsePlan       string  `json:"incidentResponsePlan" yaml:"incidentResponsePlan"`
	IncidentResponseTested     string  `json:"incidentResponseTested" yaml:"incidentResponseTested"`
	SecurityIncidentsLastYear  float64 `json:"securityIncidentsLastYear" yaml:"securityIncidentsLastYear"`
	DataBreachHistory          string  `json:"dataBreachHistory" yaml:"dataBreachHistory"`
	CyberInsurance             string  `json:"cyberInsurance" yaml:"cyberInsurance"`
	InsuranceCoverage          float64 `json:"insuranceCoverage" yaml:"insuranceCoverage"`

	// Compliance & audit
	ExistingCertifications   []string `json:"existingCertifications" yaml:"existingCertifications"`
	RegulatoryRequirements   []string `json:"regulatoryRequirements" yaml:"regulatoryRequirements"`
	DataResidency            []string `json:"dataResidency" yaml:"dataResidency"`
	ContractualSecurity      string   `json:"contractualSecurity" yaml:"contractualSecurity"`
	LastAuditDate            string   `json:"lastAuditDate" yaml:"lastAuditDate"`
	AuditFindings            int      `json:"auditFindings" yaml:"auditFindings"`
	PoliciesDocumented       string   `json:"policiesDocumented" yaml:"policiesDocumented"`
	PolicyReviewFrequency    string   `json:"policyReviewFrequency" yaml:"policyReviewFrequency"`
	PrivacyOfficerAppointed  string   `json:"privacyOfficerAppointed" yaml:"privacyOfficerAppointed"`
	PrivacyImpactAssessments string   `json:"privacyImpactAssessments" yaml:"privacyImpactAssessments"`
	DataMappingCompleted     string   `json:"dataMappingCompleted" yaml:"dataMappingCompleted"`

	// Third-party & cloud
	CriticalVendorCount     int    `json:"criticalVendorCount" yaml:"criticalVendorCount"`
	VendorRiskAssessments   string `json:"vendorRiskAssessments" yaml:"vendorRiskAssessments"`
	VendorSecurityReviews   string `json:"vendorSecurityReviews" yaml:"vendorSecurityReviews"`
	SaaSApplicationCount    int    `json:"saasApplicationCount" yaml:"saasApplicationCount"`
	CloudDataClassification string `json:"cloudDataClassification" yaml:"cloudDataClassification"`
	CloudAccessReviews      string `json:"cloudAccessReviews" yaml:"cloudAccessReviews"`
	DevelopmentOutsourced   string `json:"developmentOutsourced" yaml:"developmentOutsourced"`
	OutsourcedDevelopers    int    `json:"outsourcedDevelopers" yaml:"outsourcedDevelopers"`
	CodeReviewProcess       string `json:"codeReviewProcess" yaml:"codeReviewProcess"`
	SourceCodeEscrow        string `json:"sourceCodeEscrow" yaml:"sourceCodeEscrow"`

	// Business continuity
	BCPDocumented              string  `json:"bcpDocumented" yaml:"bcpDocumented"`
	BCPTested                  string  `json:"bcpTested" yaml:"bcpTested"`
	RTO                        float64 `json:"rto" yaml:"rto"`
	RPO                        float64 `json:"rpo" yaml:"rpo"`
	UptimeRequirement          float64 `json:"uptimeRequirement" yaml:"uptimeRequirement"`
	RedundancyLevel            string  `json:"redundancyLevel" yaml:"redundancyLevel"`
	LoadBalancing              string  `json:"loadBalancing" yaml:"loadBalancing"`
	CrisisCommunicationPlan    string  `json:"crisisCommunicationPlan" yaml:"crisisCommunicationPlan"`
	EmergencyContactList       string  `json:"emergencyContactList" yaml:"emergencyContactList"`
	CustomerBreachNotification float64 `json:"customerBreachNotification" yaml:"customerBreachNotification"`

	// Development & DevOps
	SDLCDocumented            string `json:"sdlcDocumented" yaml:"sdlcDocumented"`
	SecurityInSDLC            string `json:"securityInSDLC" yaml:"securityInSDLC"`
	ThreatModeling            string `json:"threatModeling" yaml:"threatModeling"`
	SecureCodeTraining        string `json:"secureCodeTraining" yaml:"secureCodeTraining"`
	StaticCodeAnalysis        string `json:"staticCodeAnalysis" yaml:"staticCodeAnalysis"`
	DependencyScanning        string `json:"dependencyScanning" yaml:"dependencyScanning"`
	SecretsManagement         string `json:"secretsManagement" yaml:"secretsManagement"`
	CICDPipeline              string `json:"cicdPipeline" yaml:"cicdPipeline"`
	SecurityTestingInPipeline string `json:"securityTestingInPipeline" yaml:"securityTestingInPipeline"`
	ProductionAccessControl   string `json:"productionAccessControl" yaml:"productionAccessControl"`
}

// HasCertification reports whether id is among the held certifications.
func (p Profile) HasCertification(id string) bool {
	return containsString(p.ExistingCertifications, id)
}

// HasDataType reports whether the organization handles the given data type.
func (p Profile) HasDataType(id string) bool {
	return containsString(p.DataTypes, id)
}

// HandlesSensitiveData reports whether PII, financial, or health data is held.
func (p Profile) HandlesSensitiveData() bool {
	return p.HasDataType("pii") || p.HasDataType("financial") || p.HasDataType("health")
}

// DisplayName returns the organization name or a placeholder.
func (p Profile) DisplayName() string {
	if p.Name == "" {
		return "Organization"
	}
	return p.Name
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultProfile returns the questionnaire's initial answers.
func DefaultProfile() Profile {
	return Profile{
		Region:   "us",
		Model:    "b2b",
		Industry: "saas",
		Size:     "11-50",

		Employees:    25,
		Departments:  4,
		Remote:       "yes",
		Vendors:      "yes",
		OutsourcedIT: "no",

		Hosting:       "cloud",
		CloudProvider: "aws",
		OS:            "mac",
		SaaS:          "yes",
		Network:       "yes",

		DataTypes:  []string{},
		DataVolume: "medium",

		MFA:        "mandatory",
		Password:   "strong",
		Logging:    "advanced",
		AdminCount: 2,

		RiskTolerance: "medium",
		AuditReady:    "no",

		ApplicationCount:        5,
		PublicAPIs:              "no",
		APIAuthentication:       "oauth",
		MobileApps:              "no",
		WebApplications:         3,
		PrimaryDatabase:         "postgresql",
		DatabaseCount:           2,
		DataEncryptionAtRest:    "yes",
		DataEncryptionInTransit: "yes",
		BackupFrequency:         "daily",
		BackupTesting:           "quarterly",
		NetworkSegmentation:     "no",
		FirewallType:            "basic",
		IntrusionDetection:      "no",
		VPNRequired:             "yes",

		AntivirusDeployed:          "yes",
		EDRSolution:                "defender",
		SIEMDeployed:               "no",
		VulnerabilityScanning:      "never",
		PatchingFrequency:          "monthly",
		SSOImplemented:             "no",
		PrivilegedAccessManagement: "no",
		SessionTimeouts:            30,
		AccountReviewFrequency:     "never",
		CISOPresent:                "no",
		SecurityTrainingFrequency:  "never",
		PhishingSimulations:        "no",
		IncidentResponsePlan:       "no",
		IncidentResponseTested:     "no",
		DataBreachHistory:          "no",
		CyberInsurance:             "no",

		ExistingCertifications:   []string{},
		RegulatoryRequirements:   []string{},
		DataResidency:            []string{},
		ContractualSecurity:      "no",
		PoliciesDocumented:       "none",
		PolicyReviewFrequency:    "never",
		PrivacyOfficerAppointed:  "no",
		PrivacyImpactAssessments: "no",
		DataMappingCompleted:     "no",

		CriticalVendorCount:     5,
		VendorRiskAssessments:   "no",
		VendorSecurityReviews:   "never",
		SaaSApplicationCount:    10,
		CloudDataClassification: "no",
		CloudAccessReviews:      "never",
		DevelopmentOutsourced:   "no",
		CodeReviewProcess:       "none",
		SourceCodeEscrow:        "no",

		BCPDocumented:              "no",
		BCPTested:                  "never",
		RTO:                        24,
		RPO:                        4,
		UptimeRequirement:          99.9,
		RedundancyLevel:            "none",
		LoadBalancing:              "no",
		CrisisCommunicationPlan:    "no",
		EmergencyContactList:       "no",
		CustomerBreachNotification: 72,

		SDLCDocumented:            "no",
		SecurityInSDLC:            "none",
		ThreatModeling:            "no",
		SecureCodeTraining:        "no",
		StaticCodeAnalysis:        "no",
		DependencyScanning:        "no",
		SecretsManagement:         "env_vars",
		CICDPipeline:              "no",
		SecurityTestingInPipeline: "no",
		ProductionAccessControl:   "open",
	}
}
