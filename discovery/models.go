package discovery

import "time"

// Environment is a Discovery environment: the unit of storage and
// billing that holds collections and configurations.
type Environment struct {
	EnvironmentID string         `json:"environment_id,omitempty"`
	Name          string         `json:"name,omitempty"`
	Description   string         `json:"description,omitempty"`
	Created       *time.Time     `json:"created,omitempty"`
	Updated       *time.Time     `json:"updated,omitempty"`
	Status        string         `json:"status,omitempty"`
	ReadOnly      bool           `json:"read_only,omitempty"`
	Size          string         `json:"size,omitempty"`
	RequestedSize string         `json:"requested_size,omitempty"`
	IndexCapacity *IndexCapacity `json:"index_capacity,omitempty"`
	SearchStatus  *SearchStatus  `json:"search_status,omitempty"`
}

// Environment status values.
const (
	EnvironmentStatusActive      = "active"
	EnvironmentStatusPending     = "pending"
	EnvironmentStatusMaintenance = "maintenance"
	EnvironmentStatusResizing    = "resizing"
)

// IndexCapacity reports how much of an environment is in use.
type IndexCapacity struct {
	Documents   *EnvironmentDocuments `json:"documents,omitempty"`
	DiskUsage   *DiskUsage            `json:"disk_usage,omitempty"`
	Collections *CollectionUsage      `json:"collections,omitempty"`
}

type EnvironmentDocuments struct {
	Indexed        int64 `json:"indexed"`
	MaximumAllowed int64 `json:"maximum_allowed"`
}

type DiskUsage struct {
	UsedBytes           int64 `json:"used_bytes"`
	MaximumAllowedBytes int64 `json:"maximum_allowed_bytes,omitempty"`
}

type CollectionUsage struct {
	Available      int64 `json:"available"`
	MaximumAllowed int64 `json:"maximum_allowed"`
}

// SearchStatus is the state of relevancy training for an environment.
type SearchStatus struct {
	Scope             string `json:"scope,omitempty"`
	Status            string `json:"status,omitempty"`
	StatusDescription string `json:"status_description,omitempty"`
	LastTrained       string `json:"last_trained,omitempty"`
}

type ListEnvironmentsResponse struct {
	Environments []Environment `json:"environments" validate:"dive"`
}

type DeleteEnvironmentResponse struct {
	EnvironmentID string `json:"environment_id" validate:"required"`
	Status        string `json:"status" validate:"required"`
}

// Field is an indexed field and its type.
type Field struct {
	Field string `json:"field"`
	Type  string `json:"type"`
}

type ListCollectionFieldsResponse struct {
	Fields []Field `json:"fields"`
}

// Configuration describes how documents are converted, enriched, and
// normalized on ingestion.
type Configuration struct {
	ConfigurationID string                   `json:"configuration_id,omitempty"`
	Name            string                   `json:"name" validate:"required"`
	Created         *time.Time               `json:"created,omitempty"`
	Updated         *time.Time               `json:"updated,omitempty"`
	Description     string                   `json:"description,omitempty"`
	Conversions     *Conversions             `json:"conversions,omitempty"`
	Enrichments     []Enrichment             `json:"enrichments,omitempty" validate:"dive"`
	Normalizations  []NormalizationOperation `json:"normalizations,omitempty"`
	Source          *Source                  `json:"source,omitempty"`
}

// Conversions are the per-format document conversion settings.
type Conversions struct {
	PDF                  *PDFSettings             `json:"pdf,omitempty"`
	Word                 *WordSettings            `json:"word,omitempty"`
	HTML                 *HTMLSettings            `json:"html,omitempty"`
	Segment              *SegmentSettings         `json:"segment,omitempty"`
	JSONNormalizations   []NormalizationOperation `json:"json_normalizations,omitempty"`
	ImageTextRecognition *bool                    `json:"image_text_recognition,omitempty"`
}

type PDFSettings struct {
	Heading *PDFHeadingDetection `json:"heading,omitempty"`
}

type PDFHeadingDetection struct {
	Fonts []FontSetting `json:"fonts,omitempty"`
}

// FontSetting maps a font to a heading level.
type FontSetting struct {
	Level   int64   `json:"level,omitempty"`
	MinSize float64 `json:"min_size,omitempty"`
	MaxSize float64 `json:"max_size,omitempty"`
	Bold    *bool   `json:"bold,omitempty"`
	Italic  *bool   `json:"italic,omitempty"`
	Name    string  `json:"name,omitempty"`
}

type WordSettings struct {
	Heading *WordHeadingDetection `json:"heading,omitempty"`
}

type WordHeadingDetection struct {
	Fonts  []FontSetting `json:"fonts,omitempty"`
	Styles []WordStyle   `json:"styles,omitempty"`
}

type WordStyle struct {
	Level int64    `json:"level,omitempty"`
	Names []string `json:"names,omitempty"`
}

type HTMLSettings struct {
	ExcludeTagsCompletely  []string       `json:"exclude_tags_completely,omitempty"`
	ExcludeTagsKeepContent []string       `json:"exclude_tags_keep_content,omitempty"`
	KeepContent            *XPathPatterns `json:"keep_content,omitempty"`
	ExcludeContent         *XPathPatterns `json:"exclude_content,omitempty"`
	KeepTagAttributes      []string       `json:"keep_tag_attributes,omitempty"`
	ExcludeTagAttributes   []string       `json:"exclude_tag_attributes,omitempty"`
}

type XPathPatterns struct {
	XPaths []string `json:"xpaths,omitempty"`
}

// SegmentSettings split documents into one result per heading.
type SegmentSettings struct {
	Enabled         *bool    `json:"enabled,omitempty"`
	SelectorTags    []string `json:"selector_tags,omitempty"`
	AnnotatedFields []string `json:"annotated_fields,omitempty"`
}

// NormalizationOperation rewrites the JSON of a converted document.
type NormalizationOperation struct {
	Operation        string `json:"operation,omitempty"`
	SourceField      string `json:"source_field,omitempty"`
	DestinationField string `json:"destination_field,omitempty"`
}

// Normalization operations.
const (
	NormalizationCopy        = "copy"
	NormalizationMove        = "move"
	NormalizationMerge       = "merge"
	NormalizationRemove      = "remove"
	NormalizationRemoveNulls = "remove_nulls"
)

// Enrichment applies an enrichment service to one field.
type Enrichment struct {
	Description            string             `json:"description,omitempty"`
	DestinationField       string             `json:"destination_field" validate:"required"`
	SourceField            string             `json:"source_field" validate:"required"`
	Overwrite              *bool              `json:"overwrite,omitempty"`
	Enrichment             string             `json:"enrichment" validate:"required"`
	IgnoreDownstreamErrors *bool              `json:"ignore_downstream_errors,omitempty"`
	Options                *EnrichmentOptions `json:"options,omitempty"`
}

type EnrichmentOptions struct {
	Features *NLUEnrichmentFeatures `json:"features,omitempty"`
	Language string                 `json:"language,omitempty"`
	Model    string                 `json:"model,omitempty"`
}

// NLUEnrichmentFeatures selects the Natural Language Understanding
// features applied by the natural_language_understanding enrichment.
type NLUEnrichmentFeatures struct {
	Keywords      *NLUKeywords      `json:"keywords,omitempty"`
	Entities      *NLUEntities      `json:"entities,omitempty"`
	Sentiment     *NLUSentiment     `json:"sentiment,omitempty"`
	Emotion       *NLUEmotion       `json:"emotion,omitempty"`
	Categories    map[string]any    `json:"categories,omitempty"`
	SemanticRoles *NLUSemanticRoles `json:"semantic_roles,omitempty"`
	Relations     *NLURelations     `json:"relations,omitempty"`
	Concepts      *NLUConcepts      `json:"concepts,omitempty"`
}

type NLUKeywords struct {
	Sentiment *bool `json:"sentiment,omitempty"`
	Emotion   *bool `json:"emotion,omitempty"`
	Limit     int64 `json:"limit,omitempty"`
}

type NLUEntities struct {
	Sentiment         *bool  `json:"sentiment,omitempty"`
	Emotion           *bool  `json:"emotion,omitempty"`
	Limit             int64  `json:"limit,omitempty"`
	Mentions          *bool  `json:"mentions,omitempty"`
	MentionTypes      *bool  `json:"mention_types,omitempty"`
	SentenceLocations *bool  `json:"sentence_locations,omitempty"`
	Model             string `json:"model,omitempty"`
}

type NLUSentiment struct {
	Document *bool    `json:"document,omitempty"`
	Targets  []string `json:"targets,omitempty"`
}

type NLUEmotion struct {
	Document *bool    `json:"document,omitempty"`
	Targets  []string `json:"targets,omitempty"`
}

type NLUSemanticRoles struct {
	Entities *bool `json:"entities,omitempty"`
	Keywords *bool `json:"keywords,omitempty"`
	Limit    int64 `json:"limit,omitempty"`
}

type NLURelations struct {
	Model string `json:"model,omitempty"`
}

type NLUConcepts struct {
	Limit int64 `json:"limit,omitempty"`
}

// Source is an external data source crawled into a collection.
type Source struct {
	Type         string          `json:"type,omitempty"`
	CredentialID string          `json:"credential_id,omitempty"`
	Schedule     *SourceSchedule `json:"schedule,omitempty"`
	Options      *SourceOptions  `json:"options,omitempty"`
}

// Source types.
const (
	SourceBox                = "box"
	SourceSalesforce         = "salesforce"
	SourceSharepoint         = "sharepoint"
	SourceWebCrawl           = "web_crawl"
	SourceCloudObjectStorage = "cloud_object_storage"
)

type SourceSchedule struct {
	Enabled   *bool  `json:"enabled,omitempty"`
	TimeZone  string `json:"time_zone,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

type SourceOptions struct {
	Folders         []SourceFolder   `json:"folders,omitempty"`
	Objects         []SourceObject   `json:"objects,omitempty"`
	SiteCollections []SiteCollection `json:"site_collections,omitempty"`
	URLs            []WebCrawlURL    `json:"urls,omitempty"`
	Buckets         []SourceBucket   `json:"buckets,omitempty"`
	CrawlAllBuckets *bool            `json:"crawl_all_buckets,omitempty"`
}

type SourceFolder struct {
	OwnerUserID string `json:"owner_user_id"`
	FolderID    string `json:"folder_id"`
	Limit       int64  `json:"limit,omitempty"`
}

type SourceObject struct {
	Name  string `json:"name"`
	Limit int64  `json:"limit,omitempty"`
}

type SiteCollection struct {
	SiteCollectionPath string `json:"site_collection_path"`
	Limit              int64  `json:"limit,omitempty"`
}

type WebCrawlURL struct {
	URL                       string   `json:"url"`
	LimitToStartingHosts      *bool    `json:"limit_to_starting_hosts,omitempty"`
	CrawlSpeed                string   `json:"crawl_speed,omitempty"`
	AllowUntrustedCertificate *bool    `json:"allow_untrusted_certificate,omitempty"`
	MaximumHops               int64    `json:"maximum_hops,omitempty"`
	RequestTimeout            int64    `json:"request_timeout,omitempty"`
	OverrideRobotsTxt         *bool    `json:"override_robots_txt,omitempty"`
	Blacklist                 []string `json:"blacklist,omitempty"`
}

type SourceBucket struct {
	Name  string `json:"name"`
	Limit int64  `json:"limit,omitempty"`
}

type ListConfigurationsResponse struct {
	Configurations []Configuration `json:"configurations" validate:"dive"`
}

type DeleteConfigurationResponse struct {
	ConfigurationID string   `json:"configuration_id" validate:"required"`
	Status          string   `json:"status" validate:"required"`
	Notices         []Notice `json:"notices,omitempty"`
}

// Notice is a warning or error raised while ingesting or querying.
type Notice struct {
	NoticeID    string     `json:"notice_id,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
	DocumentID  string     `json:"document_id,omitempty"`
	QueryID     string     `json:"query_id,omitempty"`
	Severity    string     `json:"severity,omitempty"`
	Step        string     `json:"step,omitempty"`
	Description string     `json:"description,omitempty"`
}

// TestDocument is the result of running a document through a
// configuration without indexing it.
type TestDocument struct {
	ConfigurationID    string             `json:"configuration_id,omitempty"`
	Status             string             `json:"status,omitempty"`
	EnrichedFieldUnits int64              `json:"enriched_field_units,omitempty"`
	OriginalMediaType  string             `json:"original_media_type,omitempty"`
	Snapshots          []DocumentSnapshot `json:"snapshots,omitempty"`
	Notices            []Notice           `json:"notices,omitempty"`
}

type DocumentSnapshot struct {
	Step     string         `json:"step,omitempty"`
	Snapshot map[string]any `json:"snapshot,omitempty"`
}

// Collection is a set of documents indexed with one configuration.
type Collection struct {
	CollectionID               string                      `json:"collection_id,omitempty"`
	Name                       string                      `json:"name,omitempty"`
	Description                string                      `json:"description,omitempty"`
	Created                    *time.Time                  `json:"created,omitempty"`
	Updated                    *time.Time                  `json:"updated,omitempty"`
	Status                     string                      `json:"status,omitempty"`
	ConfigurationID            string                      `json:"configuration_id,omitempty"`
	Language                   string                      `json:"language,omitempty"`
	DocumentCounts             *DocumentCounts             `json:"document_counts,omitempty"`
	DiskUsage                  *DiskUsage                  `json:"disk_usage,omitempty"`
	TrainingStatus             *TrainingStatus             `json:"training_status,omitempty"`
	CrawlStatus                *CrawlStatus                `json:"crawl_status,omitempty"`
	SmartDocumentUnderstanding *SmartDocumentUnderstanding `json:"smart_document_understanding,omitempty"`
}

type DocumentCounts struct {
	Available  int64 `json:"available"`
	Processing int64 `json:"processing"`
	Failed     int64 `json:"failed"`
	Pending    int64 `json:"pending"`
}

type TrainingStatus struct {
	TotalExamples            int64      `json:"total_examples"`
	Available                bool       `json:"available"`
	Processing               bool       `json:"processing"`
	MinimumQueriesAdded      bool       `json:"minimum_queries_added"`
	MinimumExamplesAdded     bool       `json:"minimum_examples_added"`
	SufficientLabelDiversity bool       `json:"sufficient_label_diversity"`
	Notices                  int64      `json:"notices"`
	SuccessfullyTrained      *time.Time `json:"successfully_trained,omitempty"`
	DataUpdated              *time.Time `json:"data_updated,omitempty"`
}

type CrawlStatus struct {
	SourceCrawl *SourceStatus `json:"source_crawl,omitempty"`
}

type SourceStatus struct {
	Status    string     `json:"status,omitempty"`
	NextCrawl *time.Time `json:"next_crawl,omitempty"`
}

type SmartDocumentUnderstanding struct {
	Enabled             bool          `json:"enabled"`
	TotalAnnotatedPages int64         `json:"total_annotated_pages,omitempty"`
	TotalPages          int64         `json:"total_pages,omitempty"`
	TotalDocuments      int64         `json:"total_documents,omitempty"`
	CustomFields        *CustomFields `json:"custom_fields,omitempty"`
}

type CustomFields struct {
	Defined        int64 `json:"defined"`
	MaximumAllowed int64 `json:"maximum_allowed"`
}

type ListCollectionsResponse struct {
	Collections []Collection `json:"collections"`
}

type DeleteCollectionResponse struct {
	CollectionID string `json:"collection_id" validate:"required"`
	Status       string `json:"status" validate:"required"`
}

// Expansion maps input terms to the terms they expand to. A nil
// InputTerms makes the expansion bidirectional.
type Expansion struct {
	InputTerms    []string `json:"input_terms,omitempty"`
	ExpandedTerms []string `json:"expanded_terms" validate:"required"`
}

type Expansions struct {
	Expansions []Expansion `json:"expansions" validate:"required,dive"`
}

// TokenDictRule is one custom tokenization rule for Japanese collections.
type TokenDictRule struct {
	Text         string   `json:"text"`
	Tokens       []string `json:"tokens"`
	Readings     []string `json:"readings,omitempty"`
	PartOfSpeech string   `json:"part_of_speech"`
}

// TokenDictStatusResponse reports the state of a tokenization dictionary
// or stopword list.
type TokenDictStatusResponse struct {
	Status string `json:"status,omitempty"`
	Type   string `json:"type,omitempty"`
}

// DocumentAccepted acknowledges a document queued for ingestion.
type DocumentAccepted struct {
	DocumentID string   `json:"document_id,omitempty"`
	Status     string   `json:"status,omitempty"`
	Notices    []Notice `json:"notices,omitempty"`
}

// DocumentStatus is the ingestion state of one document.
type DocumentStatus struct {
	DocumentID        string   `json:"document_id" validate:"required"`
	ConfigurationID   string   `json:"configuration_id,omitempty"`
	Status            string   `json:"status" validate:"required"`
	StatusDescription string   `json:"status_description" validate:"required"`
	Filename          string   `json:"filename,omitempty"`
	FileType          string   `json:"file_type,omitempty"`
	SHA1              string   `json:"sha1,omitempty"`
	Notices           []Notice `json:"notices"`
}

// Document statuses.
const (
	DocumentStatusAvailable            = "available"
	DocumentStatusAvailableWithNotices = "available with notices"
	DocumentStatusFailed               = "failed"
	DocumentStatusPending              = "pending"
	DocumentStatusProcessing           = "processing"
)

type DeleteDocumentResponse struct {
	DocumentID string `json:"document_id,omitempty"`
	Status     string `json:"status,omitempty"`
}

// TrainingExample rates the relevance of one document for a training query.
type TrainingExample struct {
	DocumentID     string `json:"document_id,omitempty"`
	CrossReference string `json:"cross_reference,omitempty"`
	Relevance      int64  `json:"relevance,omitempty"`
}

type TrainingExampleList struct {
	Examples []TrainingExample `json:"examples"`
}

// TrainingQuery is a natural language query with rated examples.
type TrainingQuery struct {
	QueryID              string            `json:"query_id,omitempty"`
	NaturalLanguageQuery string            `json:"natural_language_query,omitempty"`
	Filter               string            `json:"filter,omitempty"`
	Examples             []TrainingExample `json:"examples,omitempty"`
}

type TrainingDataSet struct {
	EnvironmentID string          `json:"environment_id,omitempty"`
	CollectionID  string          `json:"collection_id,omitempty"`
	Queries       []TrainingQuery `json:"queries,omitempty"`
}

// Credentials authenticate Discovery to an external source.
type Credentials struct {
	CredentialID      string             `json:"credential_id,omitempty"`
	SourceType        string             `json:"source_type,omitempty"`
	CredentialDetails *CredentialDetails `json:"credential_details,omitempty"`
	Status            string             `json:"status,omitempty"`
}

// CredentialDetails holds the secrets for a source. Which fields apply
// depends on SourceType and CredentialType; secrets are never returned by
// the service.
type CredentialDetails struct {
	CredentialType     string `json:"credential_type,omitempty"`
	ClientID           string `json:"client_id,omitempty"`
	EnterpriseID       string `json:"enterprise_id,omitempty"`
	URL                string `json:"url,omitempty"`
	Username           string `json:"username,omitempty"`
	OrganizationURL    string `json:"organization_url,omitempty"`
	SiteCollectionPath string `json:"site_collection.path,omitempty"`
	ClientSecret       string `json:"client_secret,omitempty"`
	PublicKeyID        string `json:"public_key_id,omitempty"`
	PrivateKey         string `json:"private_key,omitempty"`
	Passphrase         string `json:"passphrase,omitempty"`
	Password           string `json:"password,omitempty"`
	GatewayID          string `json:"gateway_id,omitempty"`
	SourceVersion      string `json:"source_version,omitempty"`
	WebApplicationURL  string `json:"web_application_url,omitempty"`
	Domain             string `json:"domain,omitempty"`
	Endpoint           string `json:"endpoint,omitempty"`
	AccessKeyID        string `json:"access_key_id,omitempty"`
	SecretAccessKey    string `json:"secret_access_key,omitempty"`
}

// Credential types.
const (
	CredentialTypeOAuth2           = "oauth2"
	CredentialTypeSAML             = "saml"
	CredentialTypeUsernamePassword = "username_password"
	CredentialTypeNoAuth           = "noauth"
	CredentialTypeBasic            = "basic"
	CredentialTypeNTLMv1           = "ntlm_v1"
	CredentialTypeAWS4HMAC         = "aws4_hmac"
)

type CredentialsList struct {
	Credentials []Credentials `json:"credentials"`
}

type DeleteCredentials struct {
	CredentialID string `json:"credential_id,omitempty"`
	Status       string `json:"status,omitempty"`
}

// Gateway connects Discovery to sources behind a firewall.
type Gateway struct {
	GatewayID string `json:"gateway_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Status    string `json:"status,omitempty"`
	Token     string `json:"token,omitempty"`
	TokenID   string `json:"token_id,omitempty"`
}

type GatewayList struct {
	Gateways []Gateway `json:"gateways"`
}

type GatewayDelete struct {
	GatewayID string `json:"gateway_id,omitempty"`
	Status    string `json:"status,omitempty"`
}
