package analyzer

import "fmt"

func analysisPrompt(description string) string {
	return fmt.Sprintf(`You are an expert business analyst. Analyze the following business description and extract key information.

Business Description:
%s

Please provide a detailed analysis in the following JSON format:
{
    "product_summary": "A concise 2-3 sentence summary of the product/service",
    "target_audience": "Primary target audience and customer segments",
    "key_benefits": ["List of 3-5 key benefits or value propositions"],
    "pain_points_solved": ["List of 3-5 specific problems this product solves"],
    "industry_category": "Primary industry category",
    "business_model": "Description of how the business makes money",
    "competitive_advantages": ["List of 2-4 unique selling points"],
    "use_cases": ["List of 3-5 specific use cases or scenarios"],
    "keywords": ["List of 10-15 relevant keywords for marketing"],
    "recommended_sources": ["List of 8-12 relevant community names where the target audience asks questions"],
    "marketing_angles": ["List of 3-5 distinct angles for naturally introducing the product in a discussion"]
}

Focus on understanding the core value proposition and who would benefit most from this product/service.
For communities, think about where the target audience would naturally ask questions or seek advice.`, description)
}
