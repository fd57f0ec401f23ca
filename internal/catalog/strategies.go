package catalog

import "github.com/alexanderramin/polaris/internal/domain"

// table is the compiled-in strategy catalog. It is never mutated; accessors
// hand out copies.
var table = []domain.Strategy{
	{
		ID:                domain.StrategyWarmUpPoll,
		Purpose:           "Build immediate engagement, activate prior knowledge, and set the emotional tone for learning through a low-stakes, curiosity-driven poll.",
		TotalTime:         "7–10 minutes",
		Tools:             "Mentimeter",
		ToolLink:          "https://www.mentimeter.com/app/home",
		InstructionalNote: "You can practice creating and running polls using Mentimeter. Try building a short 3-question quiz for your next session.",
		Flow: []domain.Step{
			{
				Phase:  "1. Launch — Create Curiosity",
				Time:   "1 min",
				Goal:   "Start with enthusiasm and explain that this is a fun warm-up quiz, not a test.",
				Action: "Launch the poll and invite students to join via code/QR.",
				Prompt: "Let’s begin with a quick warm-up quiz. Scan the code and pick the answer that feels right — no overthinking!",
				Tip:    "Encourage laughter or curiosity. Keep it light — this is to spark engagement, not assess.",
			},
			{
				Phase:  "2. Think & Vote — Answer Questions",
				Time:   "2–3 min",
				Goal:   "Engage students in rapid-fire intuitive response.",
				Action: "Questions appear one at a time with a visible countdown timer (30-40s).",
				Prompt: "Take 30 seconds for this one. Speed and accuracy both count for the leaderboard!",
				Tip:    "Each question should last no more than 30–40 seconds. Keep pace brisk to sustain excitement.",
			},
			{
				Phase:  "3. Show Results — Reveal Leaderboard",
				Time:   "1–2 min",
				Goal:   "Acknowledge both correct answers and fast responses.",
				Action: "Display the mini-leaderboard showing scores based on speed and correctness.",
				Prompt: "Great job, everyone! Let’s celebrate our fastest correct responder — fantastic thinking!",
				Tip:    "Avoid ranking negativity — focus on energy and encouragement.",
			},
			{
				Phase:  "4. Recognition — Motivate Participation",
				Time:   "Ongoing",
				Goal:   "Build positive emotional climate and support inclusion.",
				Action: "Verbally recognize top scorers and applaud improvements.",
				Prompt: "Well done, [Name]! That was a fast and accurate answer. Keep it up, team — new question coming!",
				Tip:    "Recognition builds confidence and keeps even the competitive moments inclusive.",
			},
			{
				Phase:  "5. Anchor Learning — Wrap-Up",
				Time:   "2 min",
				Goal:   "Connect the intuition from the poll to the upcoming lesson logic.",
				Action: "Discuss how initial intuition compared to the logical reality of the question.",
				Prompt: "Notice how your initial intuition compared to your reasoning after the question — that’s how learning grows.",
				Tip:    "After the final leaderboard, briefly discuss the reasoning behind the trickiest question.",
			},
		},
		Tips: []string{
			"Inclusive recognition: Highlight fast thinking as one skill, but emphasize participation too.",
			"Steady Tempo: Manage transitions smoothly between questions.",
			"Emotional Resets: Use leaderboard moments to celebrate and smile.",
			"Meta-learning: Discuss 'Why' a certain answer was chosen by the majority.",
		},
		Mistakes: []string{
			"Treating it like a formal test — it should be a primer.",
			"Overloading with questions — 3 to 5 is the sweet spot.",
			"Ignoring lower performers — highlight progress over pure rank.",
			"Complex wording — keep the language simple for high accessibility.",
		},
		DisciplineExamples: []domain.DisciplineExample{
			{Discipline: "Aptitude", Example: "If the ratio of A to B is 2:3 and B to C is 4:5, what is the ratio of A to C?"},
			{Discipline: "English", Example: "Which of the following sentences uses the correct preposition?"},
			{Discipline: "Computer Science", Example: "What will be the output of this C code snippet?"},
		},
		ReflectionPrompts: []string{
			"What emotional tone did this activity set for your class?",
			"How did your students respond — enthusiasm, competition, or hesitation?",
			"What did you learn about their prior knowledge and confidence?",
			"How could you modify the next poll for more balance?",
		},
	},
	{
		ID:          domain.StrategyCuriosityTrigger,
		Purpose:     "Pose a scenario-based mystery to spark interest and reveal the answer through exploration.",
		TotalTime:   "3–5 minutes",
		DemoImage:   "https://raw.githubusercontent.com/Anupam-NXTWave/Static-Assets/main/classroom_writing_demo.jpg",
		DemoCaption: "Classroom Demo: The instructor displays a slide with a real-world question or scenario (e.g., “Imagine Flipkart shows a bar graph of mobile sales for 3 companies over 5 years — what questions can we ask from this data?”). The instructor collects student responses verbally and writes them directly on the slide. Students begin to hypothesize, challenge each other, and build curiosity before the lesson starts.",
		Flow: []domain.Step{
			{
				Phase:  "Step 1: Pre-Session Setup — Prepare the Slide",
				Time:   "Before Class",
				Goal:   "Prepare a single visual that makes students think, not recall.",
				Action: "Display a curiosity-provoking image, chart, or short scenario with the main question. Avoid giving hints.",
				Prompt: "Prepare a single visual — it could be a graph, image, or a short case. Pose a question that makes students think, not recall. For example: ‘Why do you think this pattern occurs?’ or ‘How might we explain this difference?’",
			},
			{
				Phase:  "Step 2: Launch — Spark Curiosity",
				Time:   "1 min",
				Goal:   "Reduce pressure and allow spontaneous responses with a casual tone.",
				Action: "Start the activity as students enter. Point to the question and ask for their first guess.",
				Prompt: "What do you think is happening here? or What’s your first guess? This works best when students are not expecting a formal start. The casual tone reduces pressure and allows spontaneous responses.",
			},
			{
				Phase:  "Step 3: Ask Verbally — Encourage Divergent Thinking",
				Time:   "1–2 min",
				Goal:   "Keep asking 'why' to keep curiosity alive and prevent closure too soon.",
				Action: "Invite verbal answers openly. Accept all responses. Ask 'why' and 'how' to build depth.",
				Prompt: "Keep asking why — ‘Why do you think that?’ or ‘How did you reach that conclusion?’ Each ‘why’ keeps curiosity alive and prevents closure too soon.",
			},
			{
				Phase:  "Step 4: Write & Record — Capture the Responses",
				Time:   "1–2 min",
				Goal:   "Make the process inclusive and safe by capturing all student guesses.",
				Action: "Write student responses directly on the slide or whiteboard boxes. Keep answers visible.",
				Prompt: "Write down even partial or funny answers — this makes the process inclusive and safe. Avoid erasing; visible guesses keep tension alive and build engagement.",
			},
			{
				Phase:  "Step 5: Lesson Hook — Connect Curiosity to Content",
				Time:   "1 min",
				Goal:   "Frame the lesson as an answer-seeking journey to resolve the mystery.",
				Action: "Once the session starts, refer back to the slide. Frame the lesson as the resolution to their raised questions.",
				Prompt: "You asked some brilliant questions earlier. By the end of today, we’ll have evidence to answer each of those.",
			},
		},
		Tips: []string{
			"Use a single slide or visual; keep it visible as students enter.",
			"Encourage laughter and guesses — avoid giving clues too early.",
			"Keep at least 3–5 student responses visible on screen or board.",
			"Transition naturally from curiosity to concept ('Let’s find out together').",
		},
		Mistakes: []string{
			"Explaining too soon — let ambiguity breathe.",
			"Correcting student guesses — curiosity fades with judgment.",
			"Using overly complex visuals — simplicity invites engagement.",
			"Moving to the next topic before linking back — always close the loop later.",
		},
		DisciplineExamples: []domain.DisciplineExample{
			{Discipline: "Aptitude", Example: "Two trains start from opposite directions — can both reach the same station at the same time if their speeds differ?"},
			{Discipline: "English", Example: "Why do we say ‘interested in’ and not ‘interested on’? Is there a rule — or just habit?"},
			{Discipline: "Computer Science", Example: "When two processes access the same variable, what do you think happens first — read or write?"},
		},
		InstructionalNote: "Select a question that challenges assumptions — something that students can’t answer instantly.",
		ReflectionPrompts: []string{
			"Did students appear curious or passive during the discussion?",
			"Which “why” or “how” question triggered the most engagement?",
			"How did you connect the curiosity moment to your main topic?",
		},
	},
	{
		ID:           domain.StrategyThinkPairShare,
		Purpose:      "Facilitate reasoning-driven, collaborative discussions that empower students to think independently, discuss meaningfully, and share collectively.",
		TotalTime:    "10 minutes",
		ExtraContent: "Encourage deeper reasoning, peer learning, and engagement through structured dialogue.",
		Flow: []domain.Step{
			{
				Phase:  "Phase 1: THINK",
				Time:   "2 min",
				Goal:   "Individual reflection and reasoning.",
				Action: "Display a reasoning-based question. Students think silently and jot down their 'Why'.",
				Prompt: "Take 2 minutes to think on your own. Write down what you believe is the answer and—most importantly—why. Don’t worry about being right; focus on your reasoning.",
				Tip:    "Use prompts like: 'Why do you think that’s true?' or 'How would you justify your approach?'",
			},
			{
				Phase:  "Phase 2: PAIR",
				Time:   "2–3 min",
				Goal:   "Peer discussion and refinement of ideas.",
				Action: "Students pair with neighbors to discuss reasoning. Instructor walks around to listen.",
				Prompt: "Now turn to your neighbor and share your thoughts. Try to explain your reasoning and listen to theirs carefully. See if you can agree, or if your perspectives differ — that’s where learning happens.",
				Tip:    "Listen in and ask groups subtle prompts like: 'Can you both agree on one reasoning?' or 'Can you defend your answer to your partner?'",
			},
			{
				Phase:  "Phase 3: SHARE",
				Time:   "3–5 min",
				Goal:   "Collective synthesis and reflection.",
				Action: "Invite 2–3 pairs to share their reasoning with the class. Highlight diverse viewpoints.",
				Prompt: "Let’s come back together. I’d like to hear from 2 or 3 pairs about how they approached the question. Focus on explaining why you chose your method — not just your answer.",
				Tip:    "If time is short, summarize common patterns aloud. Reinforce that this is about understanding multiple ways of thinking.",
			},
			{
				Phase:  "Phase 4: DEBRIEF & CLOSE",
				Time:   "1 min",
				Goal:   "Reinforce learning and reflection.",
				Action: "Summarize collective reasoning and acknowledge valid approaches.",
				Prompt: "Notice how your reasoning evolved through discussion. The goal of TPS is not just to be correct, but to understand why and how others think differently.",
				Tip:    "Ask students: 'How did your answer change after hearing others’ perspectives?'",
			},
		},
		Tips: []string{
			"Pose only one question — but make it deep enough for debate.",
			"Ask 'why' and 'how' questions frequently to build depth.",
			"Move around actively during pair discussions to ensure inclusivity.",
			"Rotate pairs periodically to increase diversity of thinking.",
		},
		Mistakes: []string{
			"Using factual recall questions (yes/no or definitions) instead of reasoning.",
			"Letting the same students or pairs dominate the Share phase every time.",
			"Moving to the next topic without a collective synthesis.",
			"Ignoring quieter or isolated pairs during the walk-around.",
		},
		DisciplineExamples: []domain.DisciplineExample{
			{Discipline: "Aptitude", Example: "If 60% of 30 equals x% of 50, which is greater — x or 30? Explain why."},
			{Discipline: "English", Example: "Which sentence better conveys empathy — ‘I understand how you feel’ or ‘That must have been hard’? Why?"},
			{Discipline: "Computer Science", Example: "In a multithreaded program, two threads update the same variable — what do you think happens first, and why?"},
		},
		InstructionalNote: "Choose reasoning-based, open-ended, or real-world questions that invite multiple viewpoints.",
		ReflectionPrompts: []string{
			"How evenly were students participating in pairs?",
			"Did the discussion reveal reasoning diversity or consensus?",
			"How might you scaffold more hesitant students next time?",
			"What changes in engagement did you notice across phases?",
		},
	},
	{
		ID:                domain.StrategySelfReflection,
		Purpose:           "Facilitate a calm moment of introspection where students review and internalize today’s learning.",
		TotalTime:         "5 minutes",
		Tools:             "Google Forms | Formbricks | SurveyHeart",
		InstructionalNote: "This is a silent written reflection to help students consolidate their understanding before the session ends. Learners scan the QR code or open the form link, respond individually, and submit privately. There are no right or wrong answers — only insights about their own learning.",
		Flow: []domain.Step{
			{
				Phase:  "1. Launch & Recap",
				Time:   "1 min",
				Goal:   "Anchor student memory before they reflect.",
				Action: "Briefly list the key topics covered in the session. Then, share the form access details and explain the value of the exercise.",
				Prompt: "Before we finish, let's briefly look back at what we covered today: [Quickly recap main topics]. Now, let's take a few quiet minutes for a personal reflection. Scan the QR code or open the link. Please be honest — there are no right or wrong answers. This isn't a quiz; it's a way for you to think back and strengthen your memory of what we just learned. Even just attempting this will help you remember the class much better!",
			},
			{
				Phase:  "2. Reflect",
				Time:   "3 min",
				Goal:   "Individual introspection time.",
				Action: "Provide silence for students to answer the form questions.",
				Prompt: "Take three minutes to answer the questions. Focus on your own growth — what was clear, what was new, and what still feels a bit blurry.",
			},
			{
				Phase:  "3. Reassure & Close",
				Time:   "1 min",
				Goal:   "Provide closure and acknowledge the value of reflection.",
				Action: "Closing the activity with encouragement.",
				Prompt: "Thank you for taking the time to reflect. Remember, the goal of this was to help you anchor your own learning. Your honest thoughts help both of us see the progress you're making.",
			},
		},
		Tips: []string{
			"Keep reflection short (≤ 5 min).",
			"Encourage a calm, quiet environment — no discussion.",
			"Assure students that submissions are confidential.",
			"Read 1–2 anonymous reflections aloud next class to normalize feedback.",
		},
		Mistakes: []string{
			"Turning it into a quiz.",
			"Rushing — silence is productive here.",
		},
		ReflectionPrompts: []string{
			"Which concept felt most clear to you today?",
			"Which part of today’s class was most challenging?",
			"What’s one question you still have?",
		},
		DisciplineExamples: []domain.DisciplineExample{
			{Discipline: "Google Forms", Example: "https://forms.google.com"},
			{Discipline: "Formbricks", Example: "https://app.formbricks.com"},
			{Discipline: "SurveyHeart", Example: "https://surveyheart.com"},
		},
	},
}

// ReferenceText is the instructor delivery guide supplied to the assistant
// as grounding context.
const ReferenceText = `
Instructor Delivery Guide: Active Learning Activities (Polaris 2.0 Update)
Shared Principles: Set the Stage, Create Safety, Be Active, Timebox Clearly, Debrief Effectively.
Warm-Up Poll (Polaris 2.0): 7-10 mins. Use Mentimeter. Flow: Launch (1m), Think & Vote (2-3m), Show Results/Leaderboard (1-2m), Recognition (ongoing), Anchor (2m).
Curiosity Trigger (Polaris 2.0): 3-5 mins. Interactive classroom warm-up. Flow: Prepare Slide (Pre-Session), Launch (1m), Ask Verbally (1-2m), Write & Record (1-2m), Lesson Hook (1m).
Think-Pair-Share (TPS) (Polaris 2.0): 10 mins total. Phases: Think (2m), Pair (2-3m), Share (3-5m), Debrief (1m). 
TPS Focus: Reasoning-driven, collaborative discussions. Instructor walk-around is critical. Use reasoning-based open-ended questions.
Self-Reflection (Polaris 2.0): 5 mins total. 1 min Launch, 3 min Reflect, 1 min Reassure. Use Google Forms, Formbricks, SurveyHeart.
`
