package keyword

// DefaultVocabulary is the frozen term list for a French/English developer
// résumé. Its order defines the vector dimensions: changing it requires
// rebuilding the index.
var DefaultVocabulary = []string{
	// languages
	"csharp", "c#", "rust", "typescript", "javascript", "python", "php", "lua", "go", "golang",

	// frameworks and libraries
	"wpf", "xaml", "react", "reactjs", "nextjs", "next.js", "symfony", "express",
	"expressjs", "nodejs", "node.js", "bootstrap", "tailwind", "tauri",

	// databases
	"sql", "nosql", "sqlite", "mongodb",

	// tools
	"git", "docker", "unity", "lucene", "velocity", "vite", "json",

	// architecture
	"fullstack", "full-stack", "frontend", "backend", "desktop", "web",
	"application", "multiplateforme", "cross-platform",

	// ai
	"rag", "intelligence", "artificielle", "ai", "ia", "groq",

	// roles and domain
	"développeur", "developer", "logiciel", "software", "bibliothèque", "library",
	"framework", "api",

	// education and experience
	"master", "bachelor", "université", "genève", "informatique", "science",
	"stage", "développement", "formation", "projet", "technologies",
	"sécurité", "vérification", "algorithmique", "base", "données",
	"réseaux", "modélisation",

	// companies
	"bontaz", "gaea21", "coursera",

	// projects
	"tailwindwpf", "portfoliorag", "importer", "updater",

	// general skills
	"créer", "création", "mise", "pratique", "accent", "concepts", "relatifs",
	"mobile", "systèmes", "communication", "nouvelles", "information",

	// spoken languages
	"français", "anglais", "allemand", "courant", "professionnel", "notions",
}

// DefaultPrimaryTerms get the primary boost in every term that contains them.
var DefaultPrimaryTerms = []string{"react", "typescript", "javascript", "csharp", "rust", "nextjs", "wpf"}

// aliases are alternative spellings counted for a term.
var aliases = map[string][]string{
	"javascript": {"js"},
	"js":         {"javascript"},
	"csharp":     {"c#"},
	"c#":         {"csharp"},
}
