package scan

// ingredientsPrompt asks for a bare JSON array so the reply can be decoded
// directly; the model still fences it in markdown often enough that the
// decoder strips fences anyway.
const ingredientsPrompt = `List out all the ingredients in this food image.
Return ONLY a JSON array of ingredient names, nothing else.
Format: ["ingredient1", "ingredient2", "ingredient3"]
Be specific and detailed about each ingredient you can identify.`

// healthPromptTemplate takes the comma-joined ingredient list and an
// optional user-context sentence.
const healthPromptTemplate = `Analyze these food ingredients based on Nigerian dietary standards: %s
%s

Please provide a CONCISE and UX-friendly analysis in the following JSON format:
{
    "overall_health_status": "good" or "bad" or "moderate",
    "health_score": (number between 0-100),
    "analysis": "Short, clear summary (max 2 sentences). Focus on the most important health impact.",
    "nutritional_highlights": ["3-4 key bullet points, keep them short"],
    "health_concerns": ["2-3 main concerns, if any (short bullet points)"],
    "recommendations": ["2-3 practical tips (short bullet points)"],
    "dufil_products": [
        {
            "product_name": "name of DUFIL product",
            "reason": "Very brief reason",
            "benefit": "Core benefit"
        }
    ],
    "tolaram_products": [
        {
            "product_name": "name of Tolaram product",
            "usage": "Brief usage tip",
            "benefit": "Core benefit"
        }
    ]
}

Keep the language simple, direct, and easy to read. Avoid long medical jargon.
Return ONLY valid JSON, no additional text.`
