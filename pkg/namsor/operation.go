package namsor

// Resource groups operations by the kind of prediction they return.
type Resource string

const (
	ResourceCountry         Resource = "country"
	ResourceEthnicity       Resource = "ethnicity"
	ResourceGender          Resource = "gender"
	ResourceIndianCaste     Resource = "indianCaste"
	ResourceNameParsing     Resource = "nameParsing"
	ResourceNameType        Resource = "nameType"
	ResourceOrigin          Resource = "origin"
	ResourceUSRaceEthnicity Resource = "usRaceEthnicity"
)

// Wire constants shared by every batch endpoint.
const (
	PathPrefix = "/api2/json/"

	BodyKeyPersonalNames = "personalNames"
	BodyKeyProperNouns   = "properNouns"

	HeaderRaceTaxonomy   = "X-OPTION-USRACEETHNICITY-TAXONOMY"
	RaceTaxonomy6Classes = "USRACEETHNICITY-6CLASSES"
)

const (
	nounName       = "name"
	nounProperNoun = "proper noun"

	paramNames       = "Names to Analyze"
	paramParse       = "Names to Parse"
	paramProperNouns = "Proper Nouns to Analyze"
)

// CountryMode describes how an operation treats the countryIso2 field.
type CountryMode int

const (
	// CountryIgnored drops countryIso2 from the wire entries.
	CountryIgnored CountryMode = iota

	// CountryGeoSwitch routes the whole batch to GeoEndpoint when any raw entry
	// carries countryIso2, and to Endpoint otherwise.
	CountryGeoSwitch

	// CountryOptional keeps the single Endpoint and sends countryIso2 on the
	// entries that have it.
	CountryOptional
)

// Requirement is the per-entry filter applied before transmission.
type Requirement struct {
	// All fields must be present.
	All []Field
	// At least one of Any must be present.
	Any []Field
	// Strict turns an empty filtered batch into a MissingRequiredFieldsError
	// naming Labels instead of a generic EmptyBatchError.
	Strict bool
	Labels []string
}

// Satisfied reports whether e passes the requirement.
func (r Requirement) Satisfied(e NameEntry) bool {
	for _, f := range r.All {
		if !e.Has(f) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return true
	}
	for _, f := range r.Any {
		if e.Has(f) {
			return true
		}
	}
	return false
}

// OutputField copies the value found at Path in an upstream record into Key.
type OutputField struct {
	Key  string
	Path []string
}

// Ranked expands a TopN array into Key, Key2, Key3, ...
type Ranked struct {
	Key    string
	Source string
	// Primary, when set, is preferred over Source[0] for the unsuffixed key.
	Primary string
	// Fallback fills the unsuffixed key only when Source is empty.
	Fallback string
	// Limit caps the number of emitted keys; zero keeps the whole array.
	Limit int
}

// OutputShape is the fixed field set of a simplified record.
type OutputShape struct {
	Fields []OutputField
	Ranked *Ranked
}

// Operation is one row of the operation table.
type Operation struct {
	Resource    Resource
	Name        string
	DisplayName string
	Action      string
	Description string

	// Parameter is the display name of the input collection and Noun the item
	// kind; both appear in validation messages.
	Parameter string
	Noun      string

	Endpoint    string
	GeoEndpoint string
	BodyKey     string

	// Fields are serialized in this order when present. countryIso2 is governed
	// by Country and must not be listed here.
	Fields  []Field
	Require Requirement
	Country CountryMode
	Headers map[string]string

	Output OutputShape
}

// Key returns the registry key "resource/operation".
func (o *Operation) Key() string {
	return string(o.Resource) + "/" + o.Name
}

// ArrayKey is the top-level key of the upstream response array.
func (o *Operation) ArrayKey() string {
	return o.BodyKey
}

func field(key string, path ...string) OutputField {
	if len(path) == 0 {
		path = []string{key}
	}
	return OutputField{Key: key, Path: path}
}

var (
	splitNameFields = []Field{FieldFirstName, FieldLastName}
	fullNameFields  = []Field{FieldName}

	splitIdentity = []OutputField{field("firstName"), field("lastName")}
	fullIdentity  = []OutputField{field("name")}

	probability = field("probability", "probabilityCalibrated")
)

// Operations is the full operation table in display order.
var Operations = []Operation{
	{
		Resource:    ResourceCountry,
		Name:        "byName",
		DisplayName: "Predict by Name",
		Action:      "Predict country of residence by name",
		Description: "Predict the country of residence based on first and last name",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "countryFnLnBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      splitNameFields,
		Require:     Requirement{Any: []Field{FieldFirstName, FieldLastName}},
		Country:     CountryIgnored,
		Output: OutputShape{
			Fields: append(append([]OutputField{}, splitIdentity...),
				probability, field("region"), field("subRegion")),
			Ranked: &Ranked{Key: "country", Source: "countriesTop"},
		},
	},
	{
		Resource:    ResourceCountry,
		Name:        "byFullName",
		DisplayName: "Predict by Full Name",
		Action:      "Predict country of residence by full name",
		Description: "Predict the country of residence from a complete name string",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "countryBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      fullNameFields,
		Require:     Requirement{All: []Field{FieldName}},
		Country:     CountryIgnored,
		Output: OutputShape{
			Fields: append(append([]OutputField{}, fullIdentity...),
				probability, field("region"), field("subRegion")),
			Ranked: &Ranked{Key: "country", Source: "countriesTop"},
		},
	},
	{
		Resource:    ResourceEthnicity,
		Name:        "byName",
		DisplayName: "Predict by Name",
		Action:      "Predict ethnicity by name",
		Description: "Predict the ethnicity based on first and last name",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "diasporaBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      splitNameFields,
		Require:     Requirement{All: []Field{FieldLastName}},
		Country:     CountryOptional,
		Output: OutputShape{
			Fields: append(append([]OutputField{}, splitIdentity...), probability),
			Ranked: &Ranked{Key: "ethnicity", Source: "ethnicitiesTop"},
		},
	},
	{
		Resource:    ResourceEthnicity,
		Name:        "byFullName",
		DisplayName: "Predict by Full Name",
		Action:      "Predict ethnicity by full name",
		Description: "Predict the ethnicity from a complete name string",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "diasporaFullBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      fullNameFields,
		Require:     Requirement{All: []Field{FieldName}},
		Country:     CountryOptional,
		Output: OutputShape{
			Fields: append(append([]OutputField{}, fullIdentity...), probability),
			Ranked: &Ranked{Key: "ethnicity", Source: "ethnicitiesTop"},
		},
	},
	{
		Resource:    ResourceGender,
		Name:        "byName",
		DisplayName: "Predict by Name",
		Action:      "Predict gender by name",
		Description: "Predict the gender based on first and last name",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "genderBatch",
		GeoEndpoint: "genderGeoBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      splitNameFields,
		Require:     Requirement{All: []Field{FieldFirstName}},
		Country:     CountryGeoSwitch,
		Output: OutputShape{
			Fields: append(append([]OutputField{}, splitIdentity...),
				field("gender", "likelyGender"), probability),
		},
	},
	{
		Resource:    ResourceGender,
		Name:        "byFullName",
		DisplayName: "Predict by Full Name",
		Action:      "Predict gender by full name",
		Description: "Predict the gender from a complete name string",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "genderFullBatch",
		GeoEndpoint: "genderFullGeoBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      fullNameFields,
		Require:     Requirement{All: []Field{FieldName}},
		Country:     CountryGeoSwitch,
		Output: OutputShape{
			Fields: append(append([]OutputField{}, fullIdentity...),
				field("gender", "likelyGender"), probability),
		},
	},
	{
		Resource:    ResourceIndianCaste,
		Name:        "byName",
		DisplayName: "Predict by Name",
		Action:      "Predict indian caste by name",
		Description: "Predict the Indian caste group based on first and last name",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "castegroupIndianBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      []Field{FieldFirstName, FieldLastName, FieldSubdivisionIso},
		Require: Requirement{
			All:    []Field{FieldFirstName, FieldLastName, FieldSubdivisionIso},
			Strict: true,
			Labels: []string{"First Name", "Last Name", "Indian Subdivision"},
		},
		Country: CountryIgnored,
		Output: OutputShape{
			Fields: append(append([]OutputField{}, splitIdentity...), field("subdivisionIso"), probability),
			Ranked: &Ranked{Key: "castegroup", Source: "castegroupTop", Primary: "castegroup", Limit: 5},
		},
	},
	{
		Resource:    ResourceIndianCaste,
		Name:        "byFullName",
		DisplayName: "Predict by Full Name",
		Action:      "Predict indian caste by full name",
		Description: "Predict the Indian caste group from a complete name string",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "castegroupIndianFullBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      []Field{FieldName, FieldSubdivisionIso},
		Require: Requirement{
			All:    []Field{FieldName, FieldSubdivisionIso},
			Strict: true,
			Labels: []string{"Full Name", "Indian Subdivision"},
		},
		Country: CountryIgnored,
		Output: OutputShape{
			Fields: append(append([]OutputField{}, fullIdentity...), field("subdivisionIso"), probability),
			Ranked: &Ranked{Key: "castegroup", Source: "castegroupTop", Primary: "castegroup", Limit: 5},
		},
	},
	{
		Resource:    ResourceNameParsing,
		Name:        "splitFullNames",
		DisplayName: "Split Full Names",
		Action:      "Split full names into first and last",
		Description: "Parse a full name into first name and last name components",
		Parameter:   paramParse,
		Noun:        nounName,
		Endpoint:    "parseNameBatch",
		GeoEndpoint: "parseNameGeoBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      fullNameFields,
		Require:     Requirement{All: []Field{FieldName}},
		Country:     CountryGeoSwitch,
		Output: OutputShape{
			Fields: []OutputField{
				field("name"),
				field("firstName", "firstLastName", "firstName"),
				field("lastName", "firstLastName", "lastName"),
			},
		},
	},
	{
		Resource:    ResourceNameType,
		Name:        "properNounType",
		DisplayName: "Proper Noun Type",
		Action:      "Identify proper noun type",
		Description: "Identify the most likely name type (anthroponym, brand name, toponym, pseudonym)",
		Parameter:   paramProperNouns,
		Noun:        nounProperNoun,
		Endpoint:    "nameTypeBatch",
		GeoEndpoint: "nameTypeGeoBatch",
		BodyKey:     BodyKeyProperNouns,
		Fields:      fullNameFields,
		Require:     Requirement{All: []Field{FieldName}},
		Country:     CountryGeoSwitch,
		Output: OutputShape{
			Fields: []OutputField{field("name"), field("commonType"), field("commonTypeAlt")},
		},
	},
	{
		Resource:    ResourceOrigin,
		Name:        "byName",
		DisplayName: "Predict by Name",
		Action:      "Predict origin by name",
		Description: "Predict the geographic origin based on first and last name",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "originBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      splitNameFields,
		Require:     Requirement{Any: []Field{FieldFirstName, FieldLastName}},
		Country:     CountryIgnored,
		Output: OutputShape{
			Fields: append(append([]OutputField{}, splitIdentity...), probability,
				field("region", "regionOrigin"), field("subRegion", "subRegionOrigin")),
			Ranked: &Ranked{Key: "country", Source: "countriesOriginTop", Fallback: "countryOrigin"},
		},
	},
	{
		Resource:    ResourceOrigin,
		Name:        "byFullName",
		DisplayName: "Predict by Full Name",
		Action:      "Predict origin by full name",
		Description: "Predict the geographic origin from a complete name string",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "originFullBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      fullNameFields,
		Require:     Requirement{All: []Field{FieldName}},
		Country:     CountryIgnored,
		Output: OutputShape{
			Fields: append(append([]OutputField{}, fullIdentity...), probability,
				field("region", "regionOrigin"), field("subRegion", "subRegionOrigin")),
			Ranked: &Ranked{Key: "country", Source: "countriesOriginTop", Fallback: "countryOrigin"},
		},
	},
	{
		Resource:    ResourceUSRaceEthnicity,
		Name:        "byName",
		DisplayName: "Predict by Name",
		Action:      "Predict us race ethnicity by name",
		Description: "Predict the US census race/ethnicity based on first and last name",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "usRaceEthnicityBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      splitNameFields,
		Require:     Requirement{Any: []Field{FieldFirstName, FieldLastName}},
		Country:     CountryOptional,
		Headers:     map[string]string{HeaderRaceTaxonomy: RaceTaxonomy6Classes},
		Output: OutputShape{
			Fields: append(append([]OutputField{}, splitIdentity...), probability, field("countryIso2")),
			Ranked: &Ranked{Key: "ethnicity", Source: "raceEthnicitiesTop", Primary: "raceEthnicity", Limit: 6},
		},
	},
	{
		Resource:    ResourceUSRaceEthnicity,
		Name:        "byFullName",
		DisplayName: "Predict by Full Name",
		Action:      "Predict us race ethnicity by full name",
		Description: "Predict the US census race/ethnicity from a complete name string",
		Parameter:   paramNames,
		Noun:        nounName,
		Endpoint:    "usRaceEthnicityFullBatch",
		BodyKey:     BodyKeyPersonalNames,
		Fields:      fullNameFields,
		Require:     Requirement{All: []Field{FieldName}},
		Country:     CountryOptional,
		Headers:     map[string]string{HeaderRaceTaxonomy: RaceTaxonomy6Classes},
		Output: OutputShape{
			Fields: append(append([]OutputField{}, fullIdentity...), probability, field("countryIso2")),
			Ranked: &Ranked{Key: "ethnicity", Source: "raceEthnicitiesTop", Primary: "raceEthnicity", Limit: 6},
		},
	},
}
