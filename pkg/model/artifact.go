// Copyright © 2021 One Concern

package model

// ArtifactType describes one metadata type known to the server: how its
// artifacts are laid out on disk and how they are named in a package manifest.
type ArtifactType struct {
	// DirName is the directory holding artifacts of this type in a source tree
	DirName string

	// APIName is the canonical type name used by the metadata API
	APIName string

	// Suffix is the file extension (without dot) of artifacts of this type.
	// Empty for free-form types such as documents, whose members keep their
	// own extension, and for subcomponent types.
	Suffix string

	// HasMetaFile is true when every artifact file travels with a
	// "-meta.xml" companion in a deployment archive
	HasMetaFile bool

	// InFolders is true when artifacts of this type are grouped into named
	// folders (email templates, documents, reports, dashboards)
	InFolders bool

	// Subcomponent marks types with no standalone file representation:
	// their identity is nested inside a parent artifact's own file
	Subcomponent bool
}

// artifactTypes is the registry of every metadata type the orchestrators can
// meet, keyed by directory name. DirName and APIName are both unique: the
// table is a bijection and lookups work in either direction.
var artifactTypes = []ArtifactType{
	{DirName: "applications", APIName: "CustomApplication", Suffix: "app"},
	{DirName: "assignmentRules", APIName: "AssignmentRules", Suffix: "assignmentRules"},
	{DirName: "autoResponseRules", APIName: "AutoResponseRules", Suffix: "autoResponseRules"},
	{DirName: "classes", APIName: "ApexClass", Suffix: "cls", HasMetaFile: true},
	{DirName: "communities", APIName: "Community", Suffix: "community"},
	{DirName: "connectedApps", APIName: "ConnectedApp", Suffix: "connectedApp"},
	{DirName: "customMetadata", APIName: "CustomMetadata", Suffix: "md"},
	{DirName: "customPermissions", APIName: "CustomPermission", Suffix: "customPermission"},
	{DirName: "dashboards", APIName: "Dashboard", Suffix: "dashboard", InFolders: true},
	{DirName: "documents", APIName: "Document", HasMetaFile: true, InFolders: true},
	{DirName: "email", APIName: "EmailTemplate", Suffix: "email", HasMetaFile: true, InFolders: true},
	{DirName: "escalationRules", APIName: "EscalationRules", Suffix: "escalationRules"},
	{DirName: "flows", APIName: "Flow", Suffix: "flow"},
	{DirName: "groups", APIName: "Group", Suffix: "group"},
	{DirName: "homePageComponents", APIName: "HomePageComponent", Suffix: "homePageComponent"},
	{DirName: "homePageLayouts", APIName: "HomePageLayout", Suffix: "homePageLayout"},
	{DirName: "labels", APIName: "CustomLabels", Suffix: "labels"},
	{DirName: "layouts", APIName: "Layout", Suffix: "layout"},
	{DirName: "letterhead", APIName: "Letterhead", Suffix: "letter"},
	{DirName: "objects", APIName: "CustomObject", Suffix: "object"},
	{DirName: "objectTranslations", APIName: "CustomObjectTranslation", Suffix: "objectTranslation"},
	{DirName: "pages", APIName: "ApexPage", Suffix: "page", HasMetaFile: true},
	{DirName: "permissionsets", APIName: "PermissionSet", Suffix: "permissionset"},
	{DirName: "profiles", APIName: "Profile", Suffix: "profile"},
	{DirName: "queues", APIName: "Queue", Suffix: "queue"},
	{DirName: "quickActions", APIName: "QuickAction", Suffix: "quickAction"},
	{DirName: "remoteSiteSettings", APIName: "RemoteSiteSetting", Suffix: "remoteSite"},
	{DirName: "reports", APIName: "Report", Suffix: "report", InFolders: true},
	{DirName: "reportTypes", APIName: "ReportType", Suffix: "reportType"},
	{DirName: "roles", APIName: "Role", Suffix: "role"},
	{DirName: "sharingRules", APIName: "SharingRules", Suffix: "sharingRules"},
	{DirName: "sites", APIName: "CustomSite", Suffix: "site"},
	{DirName: "staticresources", APIName: "StaticResource", Suffix: "resource", HasMetaFile: true},
	{DirName: "tabs", APIName: "CustomTab", Suffix: "tab"},
	{DirName: "translations", APIName: "Translations", Suffix: "translation"},
	{DirName: "triggers", APIName: "ApexTrigger", Suffix: "trigger", HasMetaFile: true},
	{DirName: "components", APIName: "ApexComponent", Suffix: "component", HasMetaFile: true},
	{DirName: "workflows", APIName: "Workflow", Suffix: "workflow"},
	{DirName: "aura", APIName: "AuraDefinitionBundle"},
	{DirName: "lwc", APIName: "LightningComponentBundle"},

	// subcomponent types never appear as files of their own: they are
	// addressed as Parent.Child members nested in their parent's file
	{DirName: "fields", APIName: "CustomField", Subcomponent: true},
	{DirName: "validationRules", APIName: "ValidationRule", Subcomponent: true},
	{DirName: "webLinks", APIName: "WebLink", Subcomponent: true},
	{DirName: "recordTypes", APIName: "RecordType", Subcomponent: true},
	{DirName: "listViews", APIName: "ListView", Subcomponent: true},
	{DirName: "compactLayouts", APIName: "CompactLayout", Subcomponent: true},
	{DirName: "businessProcesses", APIName: "BusinessProcess", Subcomponent: true},
	{DirName: "fieldSets", APIName: "FieldSet", Subcomponent: true},
	{DirName: "sharingReasons", APIName: "SharingReason", Subcomponent: true},
	{DirName: "workflowAlerts", APIName: "WorkflowAlert", Subcomponent: true},
	{DirName: "workflowFieldUpdates", APIName: "WorkflowFieldUpdate", Subcomponent: true},
	{DirName: "workflowRules", APIName: "WorkflowRule", Subcomponent: true},
	{DirName: "workflowTasks", APIName: "WorkflowTask", Subcomponent: true},
}

var (
	typesByDir = make(map[string]ArtifactType, len(artifactTypes))
	typesByAPI = make(map[string]ArtifactType, len(artifactTypes))
)

func init() {
	for _, at := range artifactTypes {
		typesByDir[at.DirName] = at
		typesByAPI[at.APIName] = at
	}
}

// TypeByDirName resolves a metadata type from its source tree directory name.
// A miss returns ok=false rather than an error: the caller decides whether an
// unknown type is fatal.
func TypeByDirName(dir string) (ArtifactType, bool) {
	at, ok := typesByDir[dir]
	return at, ok
}

// TypeByAPIName resolves a metadata type from its canonical API name
func TypeByAPIName(name string) (ArtifactType, bool) {
	at, ok := typesByAPI[name]
	return at, ok
}

// Types returns a copy of the full type registry
func Types() []ArtifactType {
	out := make([]ArtifactType, len(artifactTypes))
	copy(out, artifactTypes)
	return out
}
