package categorize

import (
	"regexp"

	"github.com/DjordjeVuckovic/ai-news-hunter/internal/domain"
)

type rule struct {
	category string
	patterns []*regexp.Regexp
}

func compile(category string, patterns ...string) rule {
	r := rule{category: category}
	for _, p := range patterns {
		r.patterns = append(r.patterns, regexp.MustCompile(p))
	}
	return r
}

// defaultRules are matched against the lowercased title and abstract.
var defaultRules = []rule{
	compile(domain.CategoryNLP,
		`\bnlp\b`, `natural language`, `language model`, `text generation`,
		`sentiment`, `translation`, `transformer`, `bert`, `gpt`,
		`chatbot`, `dialogue`, `question answering`, `summarization`,
		`named entity`, `parsing`, `tokeniz`,
	),
	compile(domain.CategoryComputerVision,
		`computer vision`, `image`, `video`, `object detection`,
		`segmentation`, `visual`, `\bcnn\b`, `convolutional`,
		`recognition`, `diffusion`, `dall-?e`, `midjourney`,
	),
	compile(domain.CategoryMachineLearning,
		`machine learning`, `\bml\b`, `supervised`, `unsupervised`,
		`classification`, `regression`, `clustering`, `training`,
		`optimization`, `gradient`, `loss function`,
	),
	compile(domain.CategoryReinforcementLearning,
		`reinforcement learning`, `\brl\b`, `reward`, `\bagents?\b`,
		`policy`, `q-learning`, `rlhf`, `environment`,
	),
	compile(domain.CategoryGenerativeAI,
		`generative`, `generation`, `diffusion`, `\bgans?\b`,
		`autoencoder`, `\bvae\b`, `creative`, `synthesis`,
	),
	compile(domain.CategoryAISafety,
		`safety`, `alignment`, `harmful`, `\bbias`, `fairness`,
		`interpretab`, `explainab`, `robustness`, `adversarial`,
		`ethics`, `responsible ai`,
	),
	compile(domain.CategoryRobotics,
		`robot`, `manipulation`, `navigation`, `autonomous`,
		`\bcontrol\b`, `\bmotor`, `embodied`,
	),
	compile(domain.CategoryNeuralNetworks,
		`neural network`, `deep learning`, `\blayers?\b`, `architecture`,
		`attention`, `backprop`, `activation`, `neuron`,
	),
	compile(domain.CategoryLLM,
		`\bllms?\b`, `large language model`, `gpt`, `claude`,
		`llama`, `gemini`, `\bpalm\b`, `chatgpt`, `foundation model`,
		`instruction`, `fine-?tun`, `prompt`,
	),
}
