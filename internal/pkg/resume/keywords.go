package resume

// technicalKeywords are matched against resume text in this order
var technicalKeywords = []string{
	"Python", "Java", "JavaScript", "TypeScript", "React", "Angular", "Vue.js", "Node.js",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins",
	"Git", "CI/CD", "DevOps", "Terraform", "Ansible",
	"HTML", "CSS", "SCSS", "Bootstrap", "Tailwind",
	"PHP", "C++", "C#", ".NET", "Ruby", "Go", "Rust",
	"Django", "Flask", "Spring Boot", "Express.js", "FastAPI",
	"Machine Learning", "AI", "TensorFlow", "PyTorch", "scikit-learn",
	"REST API", "GraphQL", "Microservices", "Agile", "Scrum",
}

var softKeywords = []string{
	"Communication", "Leadership", "Teamwork", "Problem Solving", "Mentoring",
	"Collaboration", "Stakeholder Management", "Time Management", "Presentation",
}

// Category names in display order
const (
	CategoryLanguages  = "Programming Languages"
	CategoryFrameworks = "Frameworks"
	CategoryDatabases  = "Databases"
	CategoryCloud      = "DevOps & Cloud"
	CategoryFrontend   = "Frontend Technologies"
	CategoryAI         = "AI & ML"
	CategoryOther      = "Other Technologies"
)

var categoryOrder = []string{
	CategoryLanguages, CategoryFrameworks, CategoryDatabases, CategoryCloud,
	CategoryFrontend, CategoryAI, CategoryOther,
}

var categoryMembers = map[string][]string{
	CategoryLanguages:  {"python", "java", "javascript", "typescript", "php", "c++", "c#", "ruby", "go", "rust"},
	CategoryFrameworks: {"react", "angular", "vue.js", "django", "flask", "spring boot", "express.js", "fastapi"},
	CategoryDatabases:  {"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch"},
	CategoryCloud:      {"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "terraform", "ansible"},
	CategoryFrontend:   {"html", "css", "scss", "bootstrap", "tailwind"},
	CategoryAI:         {"machine learning", "ai", "tensorflow", "pytorch", "scikit-learn"},
}

var (
	frontendSignals  = []string{"react", "angular", "vue.js", "html", "css", "javascript"}
	backendSignals   = []string{"python", "java", "node.js", "sql", "postgresql"}
	fullStackUI      = []string{"react", "angular"}
	fullStackServer  = []string{"python", "java", "node.js"}
	devopsSignals    = []string{"aws", "azure", "docker", "kubernetes", "jenkins"}
	dataSciSignals   = []string{"machine learning", "ai", "tensorflow", "pytorch"}
	cloudPlatforms   = []string{"aws", "azure", "gcp"}
	containerSignals = []string{"docker", "kubernetes"}
)
