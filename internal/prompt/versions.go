package prompt

// v1 treats the home-market requirement as eliminatory.
var v1 = &variant{
	version: "v1",
	strict:  true,
	scale: `ESCALA DE NOTAS:
- 0: Descartável - não atende critérios básicos ou não está no Brasil
- 1: Muito fraca - poucos pontos positivos, muitos gaps críticos
- 2: Fraca - alguns pontos positivos, mas gaps significativos
- 3: Mediana - potencial interessante, mas precisa de mais validação
- 4: Forte - atende maioria dos critérios, definitivamente vale conversar
- 5: Excepcional - atende todos os critérios, prioridade máxima para reunião`,
	instructions: `INSTRUÇÕES (SIGA ESTA ORDEM):

PASSO 1 - ANÁLISE PRELIMINAR (Chain of Thought):
- Primeiro, preencha o campo "preliminary_analysis" com seu raciocínio passo a passo
- Compare sistematicamente os dados extraídos com os critérios do estágio identificado
- Para valores numéricos, faça validação matemática explícita:
  * Exemplo: "Receita anual extraída: R$ 4M. Faixa esperada para Seed: R$ 3.5M-10M. Verificação: 4M está dentro do intervalo? Sim, pois 3.5M ≤ 4M ≤ 10M"
- Cite diretamente os dados extraídos ao fazer comparações
- Identifique quais critérios são atendidos e quais não são, com base nas evidências

PASSO 2 - AVALIAÇÃO DE CRITÉRIOS:
- Para cada critério em "criteria" (location, stage_fit, financial_metrics, product_traction, team):
  * Determine se foi atendido ("satisfied": true/false)
  * Cite a evidência específica encontrada nos dados extraídos ("evidence")
  * Exemplo: "location": {"satisfied": true, "evidence": "Localização: São Paulo, Brasil"}
- Seja rigoroso: se a evidência não estiver clara nos dados, marque como não atendido

PASSO 3 - ATRIBUIÇÃO DA NOTA ("score", 0 a 5):
1. Verifique se a startup está localizada no Brasil (CRITÉRIO ELIMINATÓRIO: qualquer evidência de que a startup não está no Brasil resulta em nota 0)
2. Identifique o estágio mais provável baseado nas métricas
3. Compare com os critérios do estágio identificado
4. Avalie cada dimensão: métricas, produto, tração, equipe, cap table
5. Se informações críticas estiverem faltando, impacte negativamente a nota
6. Seja rigoroso mas justo na avaliação
7. Forneça justificativa detalhada ("rationale", 3-5 parágrafos) explicando a nota
8. Justifique a nota baseando-se EXCLUSIVAMENTE nas evidências extraídas

IMPORTANTE:
- NUNCA invente dados que não foram extraídos
- SEMPRE cite a fonte (dados extraídos) ao avaliar cada critério
- Se um valor numérico não estiver na faixa esperada, documente isso claramente na evidência`,
	reminder: `IMPORTANTE: Siga a ordem das instruções:
1. Primeiro, preencha "preliminary_analysis" com seu raciocínio passo a passo comparando os dados com os critérios
2. Depois, avalie cada critério fornecendo evidências específicas dos dados extraídos
3. Por fim, atribua a nota final baseada exclusivamente nas evidências encontradas

Forneça uma avaliação completa com nota de 0-5 e justificativa detalhada.`,
}

// v2 presumes the startup is local unless the data says otherwise: a missing
// location is a soft penalty and only an explicit foreign location forces 0.
var v2 = &variant{
	version: "v2",
	strict:  false,
	scale: `ESCALA DE NOTAS:
- 0: Descartável - não atende critérios básicos ou está EXPLICITAMENTE fora do Brasil
- 1: Muito fraca - poucos pontos positivos, muitos gaps críticos
- 2: Fraca - alguns pontos positivos, mas gaps significativos
- 3: Mediana - potencial interessante, mas precisa de mais validação
- 4: Forte - atende maioria dos critérios, definitivamente vale conversar
- 5: Excepcional - atende todos os critérios, prioridade máxima para reunião`,
	instructions: `INSTRUÇÕES (SIGA ESTA ORDEM):

PASSO 1 - ANÁLISE PRELIMINAR (Chain of Thought):
- Primeiro, preencha o campo "preliminary_analysis" com seu raciocínio passo a passo
- Compare sistematicamente os dados extraídos com os critérios do estágio identificado
- Para valores numéricos, faça validação matemática explícita:
  * Exemplo: "Receita anual extraída: R$ 4M. Faixa esperada para Seed: R$ 3.5M-10M. Verificação: 4M está dentro do intervalo? Sim, pois 3.5M ≤ 4M ≤ 10M"
- Cite diretamente os dados extraídos ao fazer comparações

PASSO 2 - AVALIAÇÃO DE CRITÉRIOS:
- Para cada critério em "criteria" (location, stage_fit, financial_metrics, product_traction, team):
  * Determine se foi atendido ("satisfied": true/false)
  * Em "evidence", transcreva o trecho exato dos dados extraídos que sustenta a decisão, incluindo números e unidades
  * Quando não houver dado, escreva "não informado" em "evidence" e explique o impacto na nota
- Seja rigoroso: se a evidência não estiver clara nos dados, marque como não atendido

REGRA DE LOCALIZAÇÃO (PRESUNÇÃO DE INOCÊNCIA):
- Se a localização estiver AUSENTE ou AMBÍGUA, NÃO elimine a startup: marque location como não atendido, registre "não informado" e reduza a nota em no máximo 1 ponto
- Somente quando os dados indicarem EXPLICITAMENTE que a startup opera fora do Brasil (sede e mercado principal no exterior) a nota deve ser 0
- Startups com sede no exterior mas operação principal no Brasil NÃO são eliminadas

PASSO 3 - ATRIBUIÇÃO DA NOTA ("score", 0 a 5):
1. Aplique a regra de localização acima
2. Identifique o estágio mais provável baseado nas métricas
3. Compare com os critérios do estágio identificado
4. Avalie cada dimensão: métricas, produto, tração, equipe, cap table
5. Se informações críticas estiverem faltando, impacte negativamente a nota
6. Forneça justificativa detalhada ("rationale", 3-5 parágrafos) explicando a nota
7. Justifique a nota baseando-se EXCLUSIVAMENTE nas evidências extraídas

IMPORTANTE:
- NUNCA invente dados que não foram extraídos
- SEMPRE cite a fonte (dados extraídos) ao avaliar cada critério
- Se um valor numérico não estiver na faixa esperada, documente isso claramente na evidência`,
	reminder: `IMPORTANTE: Siga a ordem das instruções:
1. Primeiro, preencha "preliminary_analysis" com seu raciocínio passo a passo comparando os dados com os critérios
2. Depois, avalie cada critério com a evidência textual correspondente (ou "não informado")
3. Lembre-se: localização ausente é penalidade leve; apenas localização explicitamente fora do Brasil resulta em nota 0
4. Por fim, atribua a nota final baseada exclusivamente nas evidências encontradas

Forneça uma avaliação completa com nota de 0-5 e justificativa detalhada.`,
}
