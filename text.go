package main

type Project struct {
	Title   string
	Summary string
	Image   string
	RepoURL string
}

type Entry struct {
	Title        string
	Organization string
	StartDate    string
	EndDate      string
	BulletPoints []string
}

var (
	FullName = "Gadige Venkatesh"
	Tagline  = "Data Science Engineer | Web Developer"
	Portrait = "/images/dp.jpg"

	AboutMe = `I am a Data Science Engineer with a strong foundation in statistics, machine learning, and data analysis.
	I combine technical expertise with web development skills to build intelligent, user-friendly applications
	that solve real-world problems.`

	Quote = "Data is not just numbers, it’s insight waiting to be discovered."

	Skills = []string{
		"Python", "R", "SQL", "Pandas", "NumPy", "Scikit-learn", "TensorFlow",
		"Power BI", "React", "HTML/CSS", "Git", "Flask",
	}

	Projects = []Project{
		{
			Title:   "Crop Recommendation System",
			Summary: "Predicts the best crop based on soil and climate inputs using ML.",
			Image:   "/images/Crop.jpg",
			RepoURL: "https://github.com/VENKATESH7569/Crop-recommendation-system",
		},
		{
			Title:   "House Price Prediction",
			Summary: "Predicts house prices based on features using regression models.",
			Image:   "/images/House.jpg",
			RepoURL: "https://github.com/VENKATESH7569/HOUSE-PRICE-PREDCTION",
		},
		{
			Title:   "Email Spam Filtering",
			Summary: "Classifies emails as spam or not using NLP and ML techniques.",
			Image:   "/images/email_spam.jpg",
			RepoURL: "https://github.com/VENKATESH7569/EMAIL-SPAM-FILTERING",
		},
		{
			Title:   "Customer Churn Prediction",
			Summary: "Predicts whether customers will leave a service using classification models.",
			Image:   "/images/churn_pred.jpg",
			RepoURL: "https://github.com/VENKATESH7569/CHURN-PREDCTION",
		},
	}

	// Experience and Education render nothing while empty.
	Experience []Entry
	Education  []Entry
)
