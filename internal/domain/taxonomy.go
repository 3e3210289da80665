package domain

const (
	CategoryNLP                   = "NLP"
	CategoryComputerVision        = "Computer Vision"
	CategoryMachineLearning       = "Machine Learning"
	CategoryReinforcementLearning = "Reinforcement Learning"
	CategoryGenerativeAI          = "Generative AI"
	CategoryAISafety              = "AI Safety"
	CategoryRobotics              = "Robotics"
	CategoryNeuralNetworks        = "Neural Networks"
	CategoryLLM                   = "LLM"
	CategoryAI                    = "AI"
	CategoryResearch              = "Research"
	CategoryTechNews              = "Tech News"
)

// Taxonomy is the fixed set of topical categories assigned by the categorizer.
var Taxonomy = []string{
	CategoryNLP,
	CategoryComputerVision,
	CategoryMachineLearning,
	CategoryReinforcementLearning,
	CategoryGenerativeAI,
	CategoryAISafety,
	CategoryRobotics,
	CategoryNeuralNetworks,
	CategoryLLM,
}
