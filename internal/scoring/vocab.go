// Package scoring provides a deterministic, model-free match score between a
// resume and a job description. It never performs I/O, so it is always
// available as a fallback when generative analysis is not.
package scoring

// hardSkillVocab lists concrete technical terms recognized in job descriptions.
// Matching is by literal substring of the normalized JD text, so multi-word
// entries like "rest api" are found inside longer phrases.
var hardSkillVocab = []string{
	"go", "golang", "python", "java", "javascript", "typescript",
	"node", "node.js", "react", "angular", "vue", "next.js",
	"c++", "c#", "rust", "kotlin", "swift", "ruby", "php", "scala",
	"html", "css", "sass", "tailwind",
	"rest", "rest api", "graphql", "grpc", "websocket", "http",
	"sql", "nosql", "postgresql", "postgres", "mysql", "sqlite",
	"mongodb", "redis", "elasticsearch", "dynamodb", "cassandra",
	"kafka", "rabbitmq", "celery",
	"docker", "kubernetes", "terraform", "ansible", "helm",
	"aws", "gcp", "azure", "lambda", "s3", "ec2",
	"linux", "bash", "shell", "git", "github actions", "jenkins", "ci/cd",
	"django", "flask", "fastapi", "spring", "spring boot", "express",
	"dotnet", ".net", "rails", "laravel",
	"microservices", "distributed systems", "system design",
	"data structures", "algorithms", "oop", "design patterns",
	"machine learning", "deep learning", "nlp", "computer vision",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	"etl", "spark", "hadoop", "airflow", "data pipeline",
	"oauth", "jwt", "tls", "grafana", "prometheus",
	"unit testing", "tdd", "selenium", "cypress",
	"agile", "scrum", "jira",
	"android", "ios", "flutter", "react native",
	"api", "json", "xml", "yaml", "protobuf",
	"dsa", "leetcode", "competitive programming",
}

// softSkillVocab lists interpersonal and work-style terms.
var softSkillVocab = []string{
	"leadership", "communication", "collaboration", "teamwork", "team",
	"mentorship", "mentoring", "mentored",
	"ownership", "accountability", "initiative",
	"problem solving", "problem-solving", "critical thinking",
	"adaptability", "flexibility", "creativity",
	"time management", "prioritization", "organization",
	"stakeholder", "presentation", "public speaking",
	"cross-functional", "interpersonal", "negotiation",
	"decision making", "attention to detail",
	"self-motivated", "fast learner", "curiosity",
	"conflict resolution", "empathy",
}

// actionVerbs are resume verbs that signal quantifiable ownership of outcomes.
var actionVerbs = []string{
	"built", "led", "launched", "shipped", "delivered", "created",
	"designed", "developed", "implemented", "engineered", "architected",
	"improved", "reduced", "increased", "optimized", "accelerated",
	"automated", "migrated", "refactored", "streamlined", "scaled",
	"mentored", "managed", "drove", "spearheaded", "established",
	"owned", "deployed", "integrated", "maintained", "resolved",
}

// stopwords are generic tokens excluded from the extracted keyword set.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "you": {}, "your": {},
	"are": {}, "will": {}, "our": {}, "this": {}, "that": {}, "have": {},
	"has": {}, "had": {}, "from": {}, "about": {}, "who": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "they": {}, "them": {}, "their": {},
	"were": {}, "been": {}, "being": {}, "its": {}, "also": {}, "able": {},
	"than": {}, "then": {}, "but": {}, "not": {}, "all": {}, "any": {},
	"can": {}, "could": {}, "must": {}, "should": {}, "would": {}, "may": {},
	"might": {}, "per": {}, "via": {}, "etc": {}, "each": {}, "more": {},
	"most": {}, "other": {}, "some": {}, "such": {}, "only": {}, "into": {},
	"over": {}, "under": {}, "between": {}, "both": {}, "during": {},
	"before": {}, "after": {}, "above": {}, "below": {}, "out": {}, "own": {},
	"same": {}, "too": {}, "very": {}, "just": {}, "while": {}, "using": {},
	"work": {}, "working": {}, "works": {}, "year": {}, "years": {},
	"experience": {}, "experienced": {}, "strong": {}, "good": {},
	"knowledge": {}, "skill": {}, "skills": {}, "ability": {},
	"plus": {}, "preferred": {}, "required": {}, "require": {},
	"requirement": {}, "requirements": {}, "requiring": {},
	"responsibilities": {}, "responsibility": {}, "role": {}, "job": {},
	"candidate": {}, "candidates": {}, "looking": {}, "seeking": {},
	"ideal": {}, "bonus": {}, "must-have": {}, "nice": {}, "join": {},
	"company": {}, "position": {}, "opportunity": {}, "applicant": {},
	"etc.": {}, "well": {}, "least": {},
}
