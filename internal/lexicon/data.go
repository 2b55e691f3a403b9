package lexicon

// DefaultData returns the built-in vocabulary. All entries are canonical
// lower-case; display casing is applied at render time.
func DefaultData() Data {
	return Data{
		Skills: []string{
			"python", "sql", "azure", "aws", "java", "react", "etl", "spark",
			"javascript", "typescript", "node", "nodejs", "docker", "kubernetes",
			"html", "css", "mongodb", "postgresql", "mysql", "git", "linux",
			"c++", "c#", "ruby", "php", "swift", "kotlin", "flutter", "django",
			"flask", "fastapi", "tensorflow", "pytorch", "machine learning",
			"deep learning", "nlp", "tableau", "power bi", "excel", "angular",
			"vue", "nextjs", "express", "graphql", "rest api", "redis", "kafka",
			"hadoop", "airflow", "snowflake", "databricks", "gcp", "terraform",
			"jenkins", "ci/cd", "agile", "scrum", "jira", "figma", "sketch",
			"photoshop", "illustrator", "sass", "tailwind", "bootstrap",
			"material ui", "redux", "zustand", "webpack", "vite", "spring boot",
			"hibernate", ".net", "go", "golang", "rust", "scala", "r", "matlab",
			"sas", "spss", "pandas", "numpy", "scikit-learn", "opencv",
			"computer vision", "natural language processing", "bert", "gpt",
			"llm", "langchain", "rag", "vector database", "pinecone", "chromadb",
			"selenium", "cypress", "jest", "mocha", "pytest", "unittest",
			"microservices", "serverless", "lambda", "s3", "ec2", "rds",
			"dynamodb", "firebase", "supabase", "vercel", "netlify", "heroku",
			"digital ocean", "nginx", "apache", "load balancing", "caching",
			"oauth", "jwt", "authentication", "authorization", "security",
			"blockchain", "solidity", "web3", "ethereum", "smart contracts",
			"ios", "android", "react native", "xamarin", "unity", "unreal",
			"three.js", "d3.js", "chart.js", "matplotlib", "seaborn", "plotly",
			"power automate", "sharepoint", "salesforce", "sap", "oracle",
			"data warehouse", "data lake", "data pipeline", "data modeling",
			"business intelligence", "data analytics", "data science",
			"statistics", "probability", "linear algebra", "calculus",
			"communication", "leadership", "teamwork", "problem solving",
			"critical thinking", "project management", "time management",
		},

		TitleQualifiers: []string{
			"senior", "sr", "junior", "jr", "lead", "staff", "principal",
			"associate", "assistant", "chief", "head",
		},
		TitleDomains: []string{
			"software", "data", "cloud", "devops", "frontend", "front end",
			"backend", "back end", "full stack", "fullstack",
			"machine learning", "ml", "ai", "security", "qa", "test", "mobile",
			"android", "ios", "web", "platform", "site reliability", "systems",
			"network", "database", "embedded", "business", "product", "project",
			"program", "marketing", "sales", "hr", "finance", "financial",
			"operations", "ux", "ui", "graphic", "digital marketing",
		},
		TitleRoles: []string{
			"engineer", "developer", "analyst", "scientist", "architect",
			"manager", "administrator", "consultant", "designer", "specialist",
			"coordinator", "executive", "intern", "lead",
		},
		IrregularTitles: []string{
			"scrum master", "product owner", "tech lead", "team lead",
			"technical lead", "engineering manager", "solutions architect",
			"software development engineer", "sde", "recruiter",
			"talent acquisition specialist", "content writer", "cto", "ceo",
			"vp of engineering", "director of engineering",
		},
		CoreRoles: []string{
			"engineer", "developer", "analyst", "scientist", "architect",
			"manager", "administrator", "consultant", "designer", "recruiter",
			"specialist", "writer",
		},

		USCities: []string{
			"new york", "san francisco", "los angeles", "chicago", "houston",
			"phoenix", "philadelphia", "san antonio", "san diego", "dallas",
			"san jose", "austin", "seattle", "denver", "boston", "atlanta",
			"miami", "washington", "charlotte", "columbus", "indianapolis",
			"portland", "nashville", "detroit", "memphis", "baltimore",
			"milwaukee", "albuquerque", "tucson", "fresno", "sacramento",
			"kansas city", "mesa", "omaha", "raleigh", "minneapolis", "tampa",
			"orlando", "pittsburgh", "cincinnati", "st louis", "salt lake city",
			"las vegas", "oakland", "cleveland", "new orleans", "jersey city",
			"santa clara", "sunnyvale", "mountain view", "palo alto", "redmond",
			"bellevue", "irvine", "plano", "boulder", "ann arbor",
			"jacksonville", "fort worth", "el paso", "oklahoma city",
			"louisville", "tulsa", "arlington", "wichita", "bakersfield",
		},
		ExcludedCities: []string{
			"mumbai", "delhi", "new delhi", "bangalore", "bengaluru",
			"hyderabad", "chennai", "kolkata", "pune", "ahmedabad", "jaipur",
			"surat", "lucknow", "kanpur", "nagpur", "indore", "bhopal",
			"noida", "gurgaon", "gurugram", "chandigarh", "kochi",
			"coimbatore", "thiruvananthapuram", "visakhapatnam", "vadodara",
			"mysore", "patna",
		},
		WorldCities: []string{
			"london", "toronto", "vancouver", "sydney", "melbourne", "berlin",
			"munich", "paris", "amsterdam", "dublin", "singapore", "tokyo",
			"dubai", "hong kong", "zurich", "stockholm", "sao paulo",
			"mexico city", "manila", "lagos", "nairobi", "cairo", "karachi",
			"dhaka", "colombo", "kathmandu",
		},
		ExcludedHints: []string{
			"india", "indian", "maharashtra", "karnataka", "tamil nadu",
			"telangana", "gujarat", "rajasthan", "west bengal",
			"uttar pradesh", "kerala", "pin code", "pincode", "aadhaar",
			"lakh", "lpa", "inr",
		},
		StateAbbrs: map[string]string{
			"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
			"california": "CA", "colorado": "CO", "connecticut": "CT",
			"delaware": "DE", "florida": "FL", "georgia": "GA", "hawaii": "HI",
			"idaho": "ID", "illinois": "IL", "indiana": "IN", "iowa": "IA",
			"kansas": "KS", "kentucky": "KY", "louisiana": "LA", "maine": "ME",
			"maryland": "MD", "massachusetts": "MA", "michigan": "MI",
			"minnesota": "MN", "mississippi": "MS", "missouri": "MO",
			"montana": "MT", "nebraska": "NE", "nevada": "NV",
			"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM",
			"new york": "NY", "north carolina": "NC", "north dakota": "ND",
			"ohio": "OH", "oklahoma": "OK", "oregon": "OR",
			"pennsylvania": "PA", "rhode island": "RI",
			"south carolina": "SC", "south dakota": "SD", "tennessee": "TN",
			"texas": "TX", "utah": "UT", "vermont": "VT", "virginia": "VA",
			"washington": "WA", "west virginia": "WV", "wisconsin": "WI",
			"wyoming": "WY",
		},
		// "IN" reads as India, "DE" as Germany, "GA" as Georgia (the
		// country). These need a corroborating US city before they count
		// as a state. Membership is a heuristic tuned from real resumes.
		AmbiguousAbbrs: []string{"IN", "DE", "GA"},

		StopWords: []string{
			"the", "a", "an", "is", "are", "was", "were", "be", "been",
			"being", "have", "has", "had", "do", "does", "did", "will",
			"would", "could", "should", "may", "might", "shall", "can",
			"need", "ought", "used", "to", "of", "in", "for", "on", "with",
			"at", "by", "from", "as", "into", "through", "during", "before",
			"after", "above", "below", "between", "out", "off", "over",
			"under", "again", "further", "then", "once", "here", "there",
			"when", "where", "why", "how", "all", "each", "every", "both",
			"few", "more", "most", "other", "some", "such", "no", "nor",
			"not", "only", "own", "same", "so", "than", "too", "very",
			"just", "now", "and", "but", "or", "if", "while", "about", "up",
			"it", "its", "they", "them", "their", "this", "that", "these",
			"those", "we", "you", "your", "our", "what", "which", "who",
			"whom", "any", "also", "etc", "able", "must", "work", "working",
			"experience", "experienced", "role", "position", "job",
			"candidate", "looking", "required", "requirements",
			"responsibilities", "company", "team", "strong", "good", "well",
			"year", "years", "plus", "skills", "ability", "knowledge",
			"understanding", "including", "across", "within", "build",
			"building", "using",
		},
	}
}
