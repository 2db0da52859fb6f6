package models

// Urgency levels, least to most pressing
const (
	UrgencyLow       = "low"
	UrgencyMedium    = "medium"
	UrgencyHigh      = "high"
	UrgencyEmergency = "emergency"
)

// UrgencyAdvice is the scheduling guidance shown for each urgency level
var UrgencyAdvice = map[string]string{
	UrgencyLow:       "LOW PRIORITY - Schedule appointment when convenient",
	UrgencyMedium:    "MODERATE PRIORITY - Schedule appointment within 1-2 weeks",
	UrgencyHigh:      "HIGH PRIORITY - Schedule appointment within a few days",
	UrgencyEmergency: "EMERGENCY - Seek immediate medical attention",
}

// NoMatchAdvice is returned when no symptom in the text is recognised
const NoMatchAdvice = "I couldn't match your symptoms to specific conditions. I recommend seeing a General Practitioner for evaluation."

// Condition is one entry of the symptom reference table
type Condition struct {
	Name            string   `json:"condition"`
	Symptoms        []string `json:"symptoms"`
	Specialist      string   `json:"specialist"`
	Urgency         string   `json:"urgency"`
	Description     string   `json:"description"`
	Treatment       string   `json:"treatment"`
	WhenToSeeDoctor string   `json:"whenToSeeDoctor"`
}

// Conditions is the reference table the symptom analyzer matches against.
// Symptoms are lowercase phrases matched as substrings of the user's text.
var Conditions = []Condition{
	{
		Name: "Diabetes",
		Symptoms: []string{
			"increased thirst", "frequent urination", "extreme fatigue",
			"blurred vision", "slow healing wounds", "unexplained weight loss",
			"increased hunger", "tingling in hands", "tingling in feet",
		},
		Specialist:      "Endocrinologist",
		Urgency:         UrgencyHigh,
		Description:     "A chronic condition affecting blood sugar regulation. Type 1: the body doesn't produce insulin. Type 2: the body doesn't use insulin properly. Untreated, it can damage the heart, kidneys, nerves and eyes.",
		Treatment:       "Healthy diet, regular exercise, blood sugar monitoring, medication or insulin as prescribed.",
		WhenToSeeDoctor: "If you have multiple symptoms, family history, or blood sugar concerns. Urgent if blood sugar is very high or low.",
	},
	{
		Name: "Hypertension",
		Symptoms: []string{
			"headaches", "shortness of breath", "nosebleeds", "chest pain",
			"dizziness", "vision problems", "fatigue", "irregular heartbeat",
		},
		Specialist:      "Cardiologist",
		Urgency:         UrgencyHigh,
		Description:     "Blood pressure consistently above 130/80 mmHg. Often has no symptoms. Risk factors include age, family history, obesity, inactivity, a high salt diet, alcohol and stress. Can lead to heart attack, stroke and kidney disease.",
		Treatment:       "DASH diet (low sodium, high fruits/vegetables), regular exercise, healthy weight, limited alcohol, stress management, medication if prescribed.",
		WhenToSeeDoctor: "If readings are consistently above 130/80, or with severe headaches or chest pain. Emergency if above 180/120.",
	},
	{
		Name: "Asthma",
		Symptoms: []string{
			"wheezing", "shortness of breath", "chest tightness",
			"coughing at night", "difficulty breathing", "rapid breathing",
		},
		Specialist:      "Pulmonologist",
		Urgency:         UrgencyMedium,
		Description:     "A chronic respiratory condition causing airway inflammation. Triggers include allergens, exercise, cold air, smoke, strong odors and respiratory infections.",
		Treatment:       "Quick-relief inhalers for acute symptoms, long-term control medications, avoiding triggers, allergy management.",
		WhenToSeeDoctor: "Frequent symptoms, waking at night, difficulty with daily activities. Emergency if breathing is severely difficult or lips turn blue.",
	},
	{
		Name: "Depression",
		Symptoms: []string{
			"persistent sadness", "loss of interest", "fatigue",
			"sleep changes", "appetite changes", "difficulty concentrating",
			"feelings of worthlessness", "thoughts of death", "irritability",
		},
		Specialist:      "Psychiatrist",
		Urgency:         UrgencyHigh,
		Description:     "A mental health disorder affecting mood and daily functioning. It can affect anyone and is highly treatable with proper care.",
		Treatment:       "Psychotherapy, antidepressant medication, lifestyle changes (exercise, diet, social support), support groups.",
		WhenToSeeDoctor: "If symptoms persist for 2+ weeks or interfere with daily life. Seek immediate help for thoughts of self-harm or suicide.",
	},
	{
		Name: "Migraine",
		Symptoms: []string{
			"severe headache", "throbbing pain", "nausea", "vomiting",
			"sensitivity to light", "sensitivity to sound", "visual auras",
			"dizziness", "blurred vision",
		},
		Specialist:      "Neurologist",
		Urgency:         UrgencyMedium,
		Description:     "A headache disorder with intense throbbing pain, usually on one side, lasting 4-72 hours if untreated. Triggers include stress, certain foods, hormonal changes, sleep changes and weather.",
		Treatment:       "Pain relievers, triptans for acute attacks, preventive medications, avoiding triggers.",
		WhenToSeeDoctor: "More than 4 migraines a month, pain not responding to over-the-counter medication, or a sudden change in headache pattern.",
	},
	{
		Name: "Arthritis",
		Symptoms: []string{
			"joint pain", "joint stiffness", "swelling", "reduced range of motion",
			"morning stiffness", "joint tenderness", "joint warmth",
		},
		Specialist:      "Rheumatologist",
		Urgency:         UrgencyMedium,
		Description:     "Inflammation of the joints causing pain and stiffness. Osteoarthritis comes with wear and aging; rheumatoid arthritis is autoimmune and can occur at any age.",
		Treatment:       "Pain relievers, anti-inflammatory medication, physical therapy, exercise, weight management, hot/cold therapy.",
		WhenToSeeDoctor: "Joint pain lasting more than a few weeks, severe swelling, or significant limits on daily activities.",
	},
	{
		Name: "GERD",
		Symptoms: []string{
			"heartburn", "chest pain", "difficulty swallowing", "regurgitation",
			"sour taste", "chronic cough", "hoarseness", "throat irritation",
		},
		Specialist:      "Gastroenterologist",
		Urgency:         UrgencyLow,
		Description:     "Gastroesophageal reflux disease: stomach acid flows back into the esophagus. Common triggers are spicy or fatty foods, caffeine, alcohol, chocolate and lying down after eating.",
		Treatment:       "Antacids, H2 blockers, proton pump inhibitors, avoiding triggers, smaller meals, elevating the head while sleeping.",
		WhenToSeeDoctor: "Heartburn twice a week or more, difficulty swallowing, symptoms despite medication, unexplained weight loss.",
	},
	{
		Name: "Thyroid Disorder",
		Symptoms: []string{
			"fatigue", "weight changes", "mood changes", "temperature sensitivity",
			"heart rate changes", "hair loss", "dry skin", "muscle weakness",
		},
		Specialist:      "Endocrinologist",
		Urgency:         UrgencyMedium,
		Description:     "The thyroid produces too much or too little hormone, affecting metabolism, energy, temperature regulation and heart rate.",
		Treatment:       "Medication to regulate hormone levels, regular blood tests, radioactive iodine or surgery in severe cases.",
		WhenToSeeDoctor: "Unexplained weight changes, persistent fatigue, a rapid or slow heart rate, or several symptoms together.",
	},
	{
		Name: "Eczema",
		Symptoms: []string{
			"itchy skin", "red patches", "dry skin", "skin rash",
			"scaling", "inflammation", "skin thickening", "oozing or crusting",
		},
		Specialist:      "Dermatologist",
		Urgency:         UrgencyLow,
		Description:     "A chronic, non-contagious skin condition causing inflammation and irritation, often triggered by allergens, stress, irritants and weather.",
		Treatment:       "Frequent moisturizing, topical corticosteroids, immunomodulators, avoiding harsh soaps and allergens.",
		WhenToSeeDoctor: "Itching that disturbs sleep, a widespread rash, signs of infection, or no response to over-the-counter treatment.",
	},
	{
		Name: "Chronic Back Pain",
		Symptoms: []string{
			"lower back pain", "muscle aches", "shooting pain", "limited flexibility",
			"pain radiating down leg", "numbness", "tingling", "difficulty standing",
		},
		Specialist:      "Orthopedist",
		Urgency:         UrgencyMedium,
		Description:     "Back pain lasting more than 3 months, from causes such as a herniated disc, arthritis, muscle strain, poor posture or disc degeneration.",
		Treatment:       "Physical therapy, NSAIDs, muscle relaxants, strengthening and stretching, posture correction, massage.",
		WhenToSeeDoctor: "Pain lasting more than 2 weeks, severe pain, leg numbness or weakness, pain after injury. Loss of bowel or bladder control is an emergency.",
	},
	{
		Name: "Anxiety Disorder",
		Symptoms: []string{
			"excessive worry", "restlessness", "fatigue", "difficulty concentrating",
			"irritability", "muscle tension", "sleep disturbances", "panic attacks",
		},
		Specialist:      "Psychiatrist",
		Urgency:         UrgencyMedium,
		Description:     "Persistent, excessive worry that interferes with daily life, including generalized anxiety, panic disorder and social anxiety.",
		Treatment:       "Cognitive behavioral therapy, medication, relaxation techniques, stress management.",
		WhenToSeeDoctor: "Worry interfering with daily life, panic attacks, physical symptoms such as a racing heart, or avoiding activities.",
	},
	{
		Name: "Allergic Rhinitis",
		Symptoms: []string{
			"sneezing", "runny nose", "itchy nose", "nasal congestion",
			"itchy eyes", "watery eyes", "postnasal drip", "cough",
		},
		Specialist:      "Allergist",
		Urgency:         UrgencyLow,
		Description:     "An allergic reaction causing nasal inflammation, triggered by pollen, dust mites, pet dander or mold. Can be seasonal or year-round.",
		Treatment:       "Antihistamines, nasal corticosteroids, decongestants, avoiding allergens, immunotherapy for severe cases.",
		WhenToSeeDoctor: "Symptoms interfering with sleep or daily life, no response to over-the-counter medication, frequent sinus infections.",
	},
}
