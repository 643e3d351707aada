package entity

import (
	"github.com/hyunsoo-an/purchase-review/constants"
)

// DocumentBase carries the fields shared by every reviewed document. Match
// flags use pointers: nil means no verdict was reached, which downstream rules
// treat as matched so that missing data never asserts a mismatch.
type DocumentBase struct {
	Exists    bool                     `json:"exists"`
	IssueDate string                   `json:"issue_date,omitempty"`
	Status    constants.DocumentStatus `json:"status"`
	Issues    []string                 `json:"issues,omitempty"`
}

// OwnerInfo is the seller identity block on the sale application.
type OwnerInfo struct {
	Name       string `json:"name,omitempty"`
	BirthDate  string `json:"birth_date,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	IsComplete bool   `json:"is_complete"`
}

// FilledFieldCount reports how many of the five identity fields were
// recovered. Used both for rule 3 grading and for picking the best
// sale-application record when a case spans multiple files.
func (o OwnerInfo) FilledFieldCount() int {
	n := 0
	for _, v := range []string{o.Name, o.BirthDate, o.Address, o.Phone, o.Email} {
		if v != "" {
			n++
		}
	}
	return n
}

// AgentInfo describes the filing party when the owner is not filing directly.
type AgentInfo struct {
	Exists      bool                `json:"exists"`
	Name        string              `json:"name,omitempty"`
	Kind        constants.AgentKind `json:"kind"`
	IDCardMatch bool                `json:"id_card_match"`
}

// SealVerification holds the seal-impression comparison for the application.
type SealVerification struct {
	SealExists        bool     `json:"seal_exists"`
	CertificateExists bool     `json:"certificate_exists"`
	MatchRate         *float64 `json:"match_rate,omitempty"`
	IsValid           bool     `json:"is_valid"`
}

// SaleApplication is the main application form.
type SaleApplication struct {
	DocumentBase

	WrittenDate         string `json:"written_date,omitempty"`
	IsAfterAnnouncement bool   `json:"is_after_announcement"`

	Owner OwnerInfo        `json:"owner"`
	Seal  SealVerification `json:"seal"`
	Agent AgentInfo        `json:"agent"`

	LandArea      *float64 `json:"land_area,omitempty"`
	LandAreaMatch *bool    `json:"land_area_match,omitempty"`

	ApprovalDate      string `json:"approval_date,omitempty"`
	ApprovalDateMatch *bool  `json:"approval_date_match,omitempty"`
}

// UnitInfo is one row of the rental-status unit table.
type UnitInfo struct {
	UnitNumber    string                   `json:"unit_number"`
	ExclusiveArea *float64                 `json:"exclusive_area,omitempty"`
	AreaMatch     *bool                    `json:"area_match,omitempty"`
	Status        constants.DocumentStatus `json:"status"`
}

// RentalStatus lists the units offered for sale and their occupancy.
type RentalStatus struct {
	DocumentBase

	Units           []UnitInfo `json:"units,omitempty"`
	MismatchedUnits []string   `json:"mismatched_units,omitempty"`
}

// DelegationInfo is one party on the power of attorney.
type DelegationInfo struct {
	Name                 string `json:"name,omitempty"`
	PersonalInfoComplete bool   `json:"personal_info_complete"`
	SealValid            bool   `json:"seal_valid"`
}

// PowerOfAttorney covers agent-filed cases.
type PowerOfAttorney struct {
	DocumentBase

	WrittenDate   string   `json:"written_date,omitempty"`
	Location      string   `json:"location,omitempty"`
	LandArea      *float64 `json:"land_area,omitempty"`
	LandAreaMatch *bool    `json:"land_area_match,omitempty"`

	Delegator DelegationInfo `json:"delegator"`
	Delegatee DelegationInfo `json:"delegatee"`

	IsAfterAnnouncement bool `json:"is_after_announcement"`
}

// IdentityDocument is a submitted ID copy.
type IdentityDocument struct {
	DocumentBase

	DocumentType   string `json:"document_type,omitempty"`
	NameOnDocument string `json:"name_on_document,omitempty"`
	NameMatch      bool   `json:"name_match"`
}

// OwnerIdentity groups the owner's seal certificate and ID copies.
type OwnerIdentity struct {
	SealCertificate          DocumentBase       `json:"seal_certificate"`
	SealCertificateIssueDate string             `json:"seal_certificate_issue_date,omitempty"`
	IdentityDocuments        []IdentityDocument `json:"identity_documents,omitempty"`
	OwnerCount               int                `json:"owner_count"`
	AllIDsSubmitted          bool               `json:"all_ids_submitted"`
}

// CorporateDocuments groups everything required when the seller is a company.
type CorporateDocuments struct {
	IsCorporation bool `json:"is_corporation"`

	BusinessRegistration     DocumentBase `json:"business_registration"`
	CorporateSealCertificate DocumentBase `json:"corporate_seal_certificate"`
	CorporateRegistry        DocumentBase `json:"corporate_registry"`

	ExecutiveIDs             []IdentityDocument `json:"executive_ids,omitempty"`
	ExecutiveCount           int                `json:"executive_count"`
	AllExecutiveIDsSubmitted bool               `json:"all_executive_ids_submitted"`

	ContractLimitConsent DocumentBase `json:"contract_limit_consent"`
	AllExecutivesSigned  bool         `json:"all_executives_signed"`
}

// HasAnyCorporateDocument reports whether any explicit corporate filing was
// observed. This is the strongest corporation signal the entity classifier
// consumes.
func (c CorporateDocuments) HasAnyCorporateDocument() bool {
	return c.BusinessRegistration.Exists ||
		c.CorporateSealCertificate.Exists ||
		c.CorporateRegistry.Exists
}

// ConsentForm is the personal-information consent. Sub-fields default to
// compliant when the form exists; the extraction layer only flips them when a
// defect was explicitly observed.
type ConsentForm struct {
	DocumentBase

	OwnerWrittenDate string `json:"owner_written_date,omitempty"`
	OwnerSigned      bool   `json:"owner_signed"`
	OwnerSealValid   bool   `json:"owner_seal_valid"`
	OwnerDateValid   bool   `json:"owner_date_valid"`

	AgentWrittenDate string `json:"agent_written_date,omitempty"`
	AgentSigned      bool   `json:"agent_signed"`
	AgentSealValid   bool   `json:"agent_seal_valid"`
	AgentDateValid   bool   `json:"agent_date_valid"`
}

// IntegrityPledge is the anti-corruption pledge signed by every party.
type IntegrityPledge struct {
	DocumentBase

	OwnerWrittenDate   string `json:"owner_written_date,omitempty"`
	OwnerSubmitted     bool   `json:"owner_submitted"`
	OwnerSealValid     bool   `json:"owner_seal_valid"`
	OwnerIDNumberValid bool   `json:"owner_id_number_valid"`

	AgentSubmitted bool `json:"agent_submitted"`
	AgentSealValid bool `json:"agent_seal_valid"`

	RealtorSubmitted bool `json:"realtor_submitted"`
	RealtorSealValid bool `json:"realtor_seal_valid"`

	CorporationIDTypeCorrect bool `json:"corporation_id_type_correct"`
}

// EmployeeConfirmation states whether the seller is an employee of the
// purchasing agency.
type EmployeeConfirmation struct {
	DocumentBase

	WrittenDate        string `json:"written_date,omitempty"`
	OwnerNameMatch     bool   `json:"owner_name_match"`
	SealValid          bool   `json:"seal_valid"`
	ExplicitSealCheck  bool   `json:"explicit_seal_check"`
	DateValid          bool   `json:"date_valid"`
	ExtractedOwnerName string `json:"extracted_owner_name,omitempty"`
}

// RealtorDocuments covers the licensed-broker filings.
type RealtorDocuments struct {
	IsRealtorAgent bool `json:"is_realtor_agent"`

	OfficeRegistration   DocumentBase `json:"office_registration"`
	BusinessRegistration DocumentBase `json:"business_registration"`

	SealMatchWithApplication bool `json:"seal_match_with_application"`
}

// BuildingLedgerSummary is required when the parcel holds two or more
// buildings.
type BuildingLedgerSummary struct {
	DocumentBase

	Required      bool `json:"required"`
	BuildingCount int  `json:"building_count"`
}

// BuildingLedgerTitle is the title section; seismic design and approval date
// are reviewed from this section only.
type BuildingLedgerTitle struct {
	DocumentBase

	ApprovalDate  string `json:"approval_date,omitempty"`
	SeismicDesign *bool  `json:"seismic_design,omitempty"`

	OutdoorParking    *int `json:"outdoor_parking,omitempty"`
	IndoorParking     *int `json:"indoor_parking,omitempty"`
	MechanicalParking *int `json:"mechanical_parking,omitempty"`

	HasBasement      *bool `json:"has_basement,omitempty"`
	BasementFloors   *int  `json:"basement_floors,omitempty"`
	HasBasementUnits *bool `json:"has_basement_units,omitempty"`

	HasElevator   *bool `json:"has_elevator,omitempty"`
	ElevatorCount *int  `json:"elevator_count,omitempty"`

	HasWorkerLivingFacility *bool `json:"has_worker_living_facility,omitempty"`
	HasPiloti               *bool `json:"has_piloti,omitempty"`
}

// ExclusiveUnit is one unit row from the exclusive-portion section.
type ExclusiveUnit struct {
	UnitNumber    string                   `json:"unit_number"`
	ExclusiveArea float64                  `json:"exclusive_area"`
	AreaValid     bool                     `json:"area_valid"`
	Status        constants.DocumentStatus `json:"status"`
}

// BuildingLedgerExclusive is the per-unit exclusive-portion section.
type BuildingLedgerExclusive struct {
	DocumentBase

	Units            []ExclusiveUnit `json:"units,omitempty"`
	InvalidAreaUnits []string        `json:"invalid_area_units,omitempty"`

	MinExclusiveArea   *float64 `json:"min_exclusive_area,omitempty"`
	MaxExclusiveArea   *float64 `json:"max_exclusive_area,omitempty"`
	MinAreaUnitNumbers []string `json:"min_area_unit_numbers,omitempty"`
	MaxAreaUnitNumbers []string `json:"max_area_unit_numbers,omitempty"`
}

// BuildingLayoutPlan is the official drawing set.
type BuildingLayoutPlan struct {
	DocumentBase

	HasSitePlan        bool `json:"has_site_plan"`
	HasAllFloorPlans   bool `json:"has_all_floor_plans"`
	HasUnitPlans       bool `json:"has_unit_plans"`
	IsGovernmentIssued bool `json:"is_government_issued"`

	MissingFloors []string `json:"missing_floors,omitempty"`
	MissingUnits  []string `json:"missing_units,omitempty"`
}

// LandLedger is the cadastral record.
type LandLedger struct {
	DocumentBase

	LandArea            *float64 `json:"land_area,omitempty"`
	LandAreaMatch       *bool    `json:"land_area_match,omitempty"`
	IsAfterAnnouncement bool     `json:"is_after_announcement"`
	LandCategory        string   `json:"land_category,omitempty"`
	UseRestrictions     []string `json:"use_restrictions,omitempty"`

	TotalParcels        int      `json:"total_parcels"`
	SubmittedParcels    int      `json:"submitted_parcels"`
	AllParcelsSubmitted bool     `json:"all_parcels_submitted"`
	MissingParcels      []string `json:"missing_parcels,omitempty"`
}

// LandUsePlan is the land-use planning certificate; its zone flags drive the
// purchase-exclusion checks.
type LandUsePlan struct {
	DocumentBase

	LandArea      *float64 `json:"land_area,omitempty"`
	LandAreaMatch *bool    `json:"land_area_match,omitempty"`

	TotalParcels        int      `json:"total_parcels"`
	SubmittedParcels    int      `json:"submitted_parcels"`
	AllParcelsSubmitted bool     `json:"all_parcels_submitted"`
	MissingParcels      []string `json:"missing_parcels,omitempty"`

	IsRedevelopmentZone      bool `json:"is_redevelopment_zone"`
	IsMaintenanceZone        bool `json:"is_maintenance_zone"`
	IsPublicHousingZone      bool `json:"is_public_housing_zone"`
	IsHousingDevelopmentZone bool `json:"is_housing_development_zone"`
	HasExclusionZone         bool `json:"has_exclusion_zone"`

	LandUseRegulations []string `json:"land_use_regulations,omitempty"`
}

// LandRegistry is the land title register.
type LandRegistry struct {
	DocumentBase

	LandArea *float64 `json:"land_area,omitempty"`

	TotalParcels        int      `json:"total_parcels"`
	SubmittedParcels    int      `json:"submitted_parcels"`
	AllParcelsSubmitted bool     `json:"all_parcels_submitted"`
	MissingParcels      []string `json:"missing_parcels,omitempty"`
}

// BuildingRegistry is the building title register.
type BuildingRegistry struct {
	DocumentBase

	TotalUnits        int      `json:"total_units"`
	SubmittedUnits    int      `json:"submitted_units"`
	AllUnitsSubmitted bool     `json:"all_units_submitted"`
	MissingUnits      []string `json:"missing_units,omitempty"`

	HasMortgage     bool     `json:"has_mortgage"`
	MortgageDetails []string `json:"mortgage_details,omitempty"`

	HasSeizure     bool     `json:"has_seizure"`
	SeizureDetails []string `json:"seizure_details,omitempty"`

	HasTrust     bool     `json:"has_trust"`
	TrustDetails []string `json:"trust_details,omitempty"`

	IsPrivateRentalStated *bool `json:"is_private_rental_stated,omitempty"`
}

// TrustDocuments are required when the building registry shows a trust.
type TrustDocuments struct {
	TrustRequired bool `json:"trust_required"`

	TrustContract             DocumentBase `json:"trust_contract"`
	SaleAuthorityConfirmation DocumentBase `json:"sale_authority_confirmation"`

	AllPartiesSigned bool `json:"all_parties_signed"`
	AllSealsValid    bool `json:"all_seals_valid"`
}

// AsBuiltDrawing carries the material names extracted from the drawing set.
type AsBuiltDrawing struct {
	DocumentBase

	MaterialsExtracted         bool   `json:"materials_extracted"`
	ExteriorFinishMaterial     string `json:"exterior_finish_material,omitempty"`
	ExteriorInsulationMaterial string `json:"exterior_insulation_material,omitempty"`
	PilotiFinishMaterial       string `json:"piloti_finish_material,omitempty"`
	PilotiInsulationMaterial   string `json:"piloti_insulation_material,omitempty"`
}

// TestCertificateDelivery groups the fire-safety test certificate and the
// delivery confirmation. A certificate is only valid with both the heat
// release and the gas toxicity tests; thermal conductivity alone is void.
type TestCertificateDelivery struct {
	DocumentBase

	HasHeatReleaseTest         bool `json:"has_heat_release_test"`
	HasGasToxicityTest         bool `json:"has_gas_toxicity_test"`
	HasThermalConductivityTest bool `json:"has_thermal_conductivity_test"`
	HasDeliveryConfirmation    bool `json:"has_delivery_confirmation"`
	StoneExteriorException     bool `json:"stone_exterior_exception"`

	MaterialsWithTestCert     []string `json:"materials_with_test_cert,omitempty"`
	MaterialsWithDeliveryConf []string `json:"materials_with_delivery_conf,omitempty"`
	DetectedTests             []string `json:"detected_tests,omitempty"`

	TestCertFileExists     bool `json:"test_cert_file_exists"`
	DeliveryConfFileExists bool `json:"delivery_conf_file_exists"`
}
